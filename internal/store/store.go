package store

import (
	"context"
	"sync"
)

// Settings keys read and written by the bot.
const (
	// KeyPMUsers lists participants preferring direct messages over notices.
	KeyPMUsers = "pm_users"
	// KeySubscribers lists participants invited when a game gathers.
	KeySubscribers = "subscribers"
)

// Settings is the persisted key-value structure. Values are string lists;
// no schema is enforced beyond the keys callers use.
type Settings map[string][]string

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// SettingsStore loads and saves Settings.
type SettingsStore interface {
	// Load returns the stored settings, or empty settings if nothing was saved yet.
	Load(ctx context.Context) (Settings, error)

	// Save replaces the stored settings.
	Save(ctx context.Context, settings Settings) error

	// Close releases the underlying resources.
	Close() error
}

// Updater serializes read-modify-write cycles on a SettingsStore so that
// components writing different keys do not overwrite each other.
type Updater struct {
	mu    sync.Mutex
	store SettingsStore
}

// NewUpdater wraps st.
func NewUpdater(st SettingsStore) *Updater {
	return &Updater{store: st}
}

// Load returns the current settings.
func (u *Updater) Load(ctx context.Context) (Settings, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.store.Load(ctx)
}

// Update loads the settings, lets fn modify them and saves the result.
// Nothing is saved if fn returns an error.
func (u *Updater) Update(ctx context.Context, fn func(Settings) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	settings, err := u.store.Load(ctx)
	if err != nil {
		return err
	}
	if settings == nil {
		settings = Settings{}
	}
	if err := fn(settings); err != nil {
		return err
	}
	return u.store.Save(ctx, settings)
}
