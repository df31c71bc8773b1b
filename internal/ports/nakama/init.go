package nakama

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"virusgame/internal/app"
	"virusgame/internal/config"
	"virusgame/internal/ports"
	"virusgame/internal/telemetry"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule loads configuration, builds the game service and registers its RPCs.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	environ, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if err := config.LoadGameConfig(environ[ConfigPathEnv], environ); err != nil {
		return fmt.Errorf("load game config: %w", err)
	}
	cfg := config.GetGameConfig()

	flush, err := telemetry.Setup(ctx, "virusgame", cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}

	games := app.NewRegistry(cfg.MaxGames, cfg.IdleTTL)
	svc := app.NewService(games, rand.New(rand.NewSource(time.Now().UnixNano())), cfg.MaxPlayers)

	var (
		analytics ports.AnalyticsPort
		notifier  ports.NotifierPort
	)
	if cfg.Analytics {
		analytics = NewNakamaAnalyticsAdapter(nk)
		if err := initializer.RegisterEvent(func(ctx context.Context, logger runtime.Logger, evt *api.Event) {
			logger.Debug("Event %s: %v", evt.Name, evt.Properties)
		}); err != nil {
			return err
		}
	}
	if cfg.NotifyTurns {
		notifier = NewNakamaNotifierAdapter(nk)
	}

	if err := NewGateway(svc, analytics, notifier).RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := runJanitor(initializer, games, cfg.SweepInterval, flush); err != nil {
		return err
	}

	logger.Info("Virus Go module loaded (max_games=%d, idle_ttl=%s, max_players=%d, tracing=%t).",
		cfg.MaxGames, cfg.IdleTTL, cfg.MaxPlayers, cfg.OTelEndpoint != "")
	return nil
}

// runJanitor sweeps games in the background until the server shuts down,
// then flushes pending spans.
func runJanitor(initializer runtime.Initializer, games *app.Registry, interval time.Duration, flush func(context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		games.Run(ctx, interval)
	}()

	err := initializer.RegisterShutdown(func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) {
		cancel()
		<-done
		if err := flush(ctx); err != nil {
			logger.Warn("Failed to flush spans: %v", err)
		}
		logger.Info("Virus Go module stopped.")
	})
	if err != nil {
		cancel()
		return err
	}
	return nil
}
