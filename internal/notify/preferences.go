// Package notify owns the process-wide delivery preferences and the
// invitation subscriber list, both persisted through a settings store.
package notify

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/vovakirdan/wirechat-gamebot/internal/store"
)

// DeliveryMode is how private messages reach a participant.
type DeliveryMode int

const (
	// DeliveryNotice sends a passive notice. This is the default.
	DeliveryNotice DeliveryMode = iota
	// DeliveryDirect sends a direct message.
	DeliveryDirect
)

func (m DeliveryMode) String() string {
	if m == DeliveryDirect {
		return "direct"
	}
	return "notice"
}

// PreferenceChange describes a preference update request.
// Privileged actors may change any Target; everybody else only themselves.
type PreferenceChange struct {
	Actor      string
	Target     string
	Direct     bool
	Privileged bool
}

// Preferences is the set of participants preferring direct delivery.
type Preferences struct {
	// writeMu serializes Set so persisted and in-memory sets stay in step.
	writeMu sync.Mutex

	mu     sync.RWMutex
	direct map[string]struct{}

	settings *store.Updater
	log      *zerolog.Logger
}

// NewPreferences returns an empty preference set backed by settings.
// Call Load before serving.
func NewPreferences(settings *store.Updater, logger *zerolog.Logger) *Preferences {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Preferences{
		direct:   make(map[string]struct{}),
		settings: settings,
		log:      logger,
	}
}

// Load replaces the in-memory set with the persisted one.
func (p *Preferences) Load(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	settings, err := p.settings.Load(ctx)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	set := toSet(settings[store.KeyPMUsers])

	p.mu.Lock()
	p.direct = set
	p.mu.Unlock()

	p.log.Debug().Int("direct", len(set)).Msg("delivery preferences loaded")
	return nil
}

// Set applies change and returns the participant that was actually changed.
// The new set is persisted before it becomes visible, so a failed write
// leaves the in-memory set untouched.
func (p *Preferences) Set(ctx context.Context, change PreferenceChange) (string, error) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	target := change.Actor
	if change.Privileged && change.Target != "" {
		target = change.Target
	}

	var next map[string]struct{}
	err := p.settings.Update(ctx, func(s store.Settings) error {
		p.mu.RLock()
		next = make(map[string]struct{}, len(p.direct)+1)
		for user := range p.direct {
			next[user] = struct{}{}
		}
		p.mu.RUnlock()

		if change.Direct {
			next[target] = struct{}{}
		} else {
			delete(next, target)
		}
		s[store.KeyPMUsers] = sortedKeys(next)
		return nil
	})
	if err != nil {
		return target, fmt.Errorf("save preferences: %w", err)
	}

	p.mu.Lock()
	p.direct = next
	p.mu.Unlock()

	p.log.Info().Str("actor", change.Actor).Str("user", target).Bool("direct", change.Direct).Msg("delivery preference changed")
	return target, nil
}

// PrefersDirect reports whether user opted into direct delivery.
func (p *Preferences) PrefersDirect(user string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.direct[user]
	return ok
}

// DeliveryMode is the delivery policy consulted on every private send.
func (p *Preferences) DeliveryMode(user string) DeliveryMode {
	if p.PrefersDirect(user) {
		return DeliveryDirect
	}
	return DeliveryNotice
}

// List returns the participants preferring direct delivery, sorted.
func (p *Preferences) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return sortedKeys(p.direct)
}

func toSet(users []string) map[string]struct{} {
	return lo.SliceToMap(users, func(u string) (string, struct{}) {
		return u, struct{}{}
	})
}

func sortedKeys(set map[string]struct{}) []string {
	out := lo.Keys(set)
	sort.Strings(out)
	return out
}
