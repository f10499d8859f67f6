package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kropiunig/domain-radar/internal/core/profile"
	"github.com/Kropiunig/domain-radar/internal/platform/config"
	"github.com/Kropiunig/domain-radar/internal/platform/logger"
	"github.com/Kropiunig/domain-radar/internal/platform/metrics"
	"github.com/Kropiunig/domain-radar/internal/platform/store"
	apimod "github.com/Kropiunig/domain-radar/internal/services/api/module"
	resolvedom "github.com/Kropiunig/domain-radar/internal/services/resolve/domain"
	resolvemod "github.com/Kropiunig/domain-radar/internal/services/resolve/module"
	scanmod "github.com/Kropiunig/domain-radar/internal/services/scan/module"
)

func scanCmd() *cobra.Command {
	var (
		apiOn    bool
		deadline time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run an availability scan until the space is exhausted or stopped",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			log := logger.Get()

			prof, err := loadProfile(cfg)
			if err != nil {
				return err
			}
			if deadline > 0 {
				prof.Deadline = profile.Duration(deadline)
			}

			ctx, stop := signalContext()
			defer stop()

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(context.Background()); err != nil {
					log.Error().Err(err).Msg("failed to close store")
				}
			}()

			mx := metrics.New()
			resolver := resolvemod.New(cfg, mx, resolvedom.Ports{})
			scanner, err := scanmod.New(ctx, cfg, prof, scanmod.Deps{
				Checker: resolver.Checker(),
				Store:   st,
			}, mx)
			if err != nil {
				return err
			}

			if apiOn || apimod.FromConfig(cfg).Enabled {
				api := apimod.New(cfg, scanner.Service())
				go func() {
					if err := api.Server().Run(ctx); err != nil {
						log.Warn().Err(err).Msg("status api stopped")
					}
				}()
			}

			status, err := scanner.Service().Run(ctx)
			if err != nil {
				return err
			}
			log.Info().
				Str("run_id", status.RunID).
				Int("checked", status.Checked).
				Int("found", status.Found).
				Int("skipped", status.Skipped).
				Int("rounds", status.Rounds).
				Dur("duration", status.Duration).
				Msg("scan complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&apiOn, "api", false, "serve the status API while scanning")
	cmd.Flags().DurationVar(&deadline, "deadline", 0, "stop after this wall-clock duration (overrides the profile)")
	return cmd
}

// loadProfile prefers the --profile flag, then $CORE_SCAN_PROFILE, then
// the built-in defaults
func loadProfile(cfg config.Conf) (profile.Profile, error) {
	path := scanmod.FromConfig(cfg).ProfilePath
	if path == "" {
		return profile.Default(), nil
	}
	return profile.Load(path)
}

// signalContext cancels on the first signal and force-exits on the second
func signalContext() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		logger.Get().Info().Msg("stop requested, letting the round settle (signal again to force quit)")
		cancel()
		<-ch
		logger.Get().Warn().Msg("forced exit")
		os.Exit(130)
	}()
	return ctx, func() {
		signal.Stop(ch)
		cancel()
	}
}

// openStore opens only the backends this invocation needs
func openStore(ctx context.Context, cfg config.Conf) (*store.Store, error) {
	o := scanmod.FromConfig(cfg)
	sc := store.Config{AppName: "domain-radar"}

	switch o.StateBackend {
	case "postgres":
		pgCfg := cfg.Prefix("SERVICE_PGSQL_")
		sc.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		}
	case "redis":
		rdsCfg := cfg.Prefix("SERVICE_REDIS_")
		sc.RDS = store.RedisConfig{
			Enabled: true,
			URL:     rdsCfg.MustString("DBURL"),
		}
	}

	chCfg := cfg.Prefix("SERVICE_CLICKHOUSE_")
	if chCfg.MayBool("ENABLED", false) {
		sc.CH = store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "domain-radar",
		}
	}

	return store.Open(ctx, sc, store.WithLogger(*logger.Get()))
}
