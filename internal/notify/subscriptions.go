package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/vovakirdan/wirechat-gamebot/internal/store"
)

var (
	// ErrAlreadySubscribed is returned by Subscribe for an existing subscriber.
	ErrAlreadySubscribed = errors.New("already subscribed")
	// ErrNotSubscribed is returned by Unsubscribe for an unknown subscriber.
	ErrNotSubscribed = errors.New("not subscribed")
)

// Subscriptions is the invitation list. It reads through to the store on
// every call so edits made to the store by hand are picked up.
type Subscriptions struct {
	settings *store.Updater
}

// NewSubscriptions returns the invitation list stored in settings.
func NewSubscriptions(settings *store.Updater) *Subscriptions {
	return &Subscriptions{settings: settings}
}

// Subscribers lists the subscribed participants.
func (s *Subscriptions) Subscribers(ctx context.Context) ([]string, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load subscribers: %w", err)
	}
	return append([]string(nil), settings[store.KeySubscribers]...), nil
}

// Subscribe adds user to the invitation list.
func (s *Subscriptions) Subscribe(ctx context.Context, user string) error {
	return s.settings.Update(ctx, func(st store.Settings) error {
		subs := st[store.KeySubscribers]
		if lo.Contains(subs, user) {
			return ErrAlreadySubscribed
		}
		st[store.KeySubscribers] = append(subs, user)
		return nil
	})
}

// Unsubscribe removes user from the invitation list.
func (s *Subscriptions) Unsubscribe(ctx context.Context, user string) error {
	return s.settings.Update(ctx, func(st store.Settings) error {
		subs := st[store.KeySubscribers]
		if !lo.Contains(subs, user) {
			return ErrNotSubscribed
		}
		st[store.KeySubscribers] = lo.Without(subs, user)
		return nil
	})
}
