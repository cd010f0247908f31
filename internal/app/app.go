package app

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-gamebot/internal/auth"
	"github.com/vovakirdan/wirechat-gamebot/internal/bot"
	"github.com/vovakirdan/wirechat-gamebot/internal/changelog"
	"github.com/vovakirdan/wirechat-gamebot/internal/chat"
	"github.com/vovakirdan/wirechat-gamebot/internal/config"
	"github.com/vovakirdan/wirechat-gamebot/internal/core"
	"github.com/vovakirdan/wirechat-gamebot/internal/games/roster"
	"github.com/vovakirdan/wirechat-gamebot/internal/notify"
	"github.com/vovakirdan/wirechat-gamebot/internal/store"
	transporthttp "github.com/vovakirdan/wirechat-gamebot/internal/transport/http"
)

// App wires together core, bot and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	registry        *core.Registry
	store           store.SettingsStore
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := OpenSettingsStore(ctx, cfg.Settings)
	if err != nil {
		return nil, fmt.Errorf("init settings store: %w", err)
	}
	logger.Info().Str("driver", cfg.Settings.Driver).Msg("settings store initialized")

	a, err := newWithStore(ctx, cfg, st, logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return a, nil
}

func newWithStore(ctx context.Context, cfg *config.Config, st store.SettingsStore, logger *zerolog.Logger) (*App, error) {
	if err := auth.CheckAccounts(cfg.Accounts); err != nil {
		return nil, fmt.Errorf("check accounts: %w", err)
	}
	updater := store.NewUpdater(st)

	prefs := notify.NewPreferences(updater, logger)
	if err := prefs.Load(ctx); err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	subs := notify.NewSubscriptions(updater)

	cl, err := changelog.Load(cfg.ChangelogFile)
	if err != nil {
		return nil, fmt.Errorf("load changelog: %w", err)
	}

	clk := clock.New()
	network := chat.NewNetwork(cfg.BotNick, prefs, clk, logger)
	rules := roster.New(cfg.Game.Name, cfg.Game.MinPlayers, cfg.Game.MaxPlayers, network, clk, logger)
	registry := core.NewRegistry(rules, network, core.Options{
		Rooms:          cfg.Rooms,
		IdleThreshold:  cfg.AllowedIdle,
		IdlePeriod:     cfg.IdlePollPeriod,
		InviteInterval: cfg.InviteInterval,
		Subscribers:    subs,
		Clock:          clk,
	}, logger)

	b := bot.New(bot.Deps{
		Registry:      registry,
		Moderation:    core.NewModeration(registry, cfg.Mods),
		Network:       network,
		Preferences:   prefs,
		Subscriptions: subs,
		Changelog:     cl,
	}, logger)
	network.AddListener(b)

	authService := auth.NewService(cfg.Accounts, &auth.JWTConfig{
		Secret:   []byte(cfg.JWT.Secret),
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL,
	})

	server := transporthttp.NewServer(transporthttp.Deps{
		Network:  network,
		Bot:      b,
		Auth:     authService,
		Registry: registry,
	}, *cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		registry:        registry,
		store:           st,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and the idle scheduler and blocks until
// context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	idleCtx, stopIdle := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.registry.RunIdleEviction(idleCtx)
	}()
	defer func() {
		stopIdle()
		wg.Wait()
		a.cleanup()
	}()

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}

// cleanup closes the settings store.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close settings store")
		} else {
			a.log.Info().Msg("settings store closed")
		}
	}
}
