// Package main is the entry point for the OctoFit Tracker API server.
//
// The server exposes the REST API for activity logging, profile and team
// management, leaderboards and summaries. It also hosts the background
// scheduler that keeps the leaderboard cache warm.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/octofit-hub/octofit-tracker/config"
	"github.com/octofit-hub/octofit-tracker/internal/application/command"
	"github.com/octofit-hub/octofit-tracker/internal/application/eventhandler"
	"github.com/octofit-hub/octofit-tracker/internal/application/query"
	"github.com/octofit-hub/octofit-tracker/internal/domain/leaderboard"
	"github.com/octofit-hub/octofit-tracker/internal/domain/shared"
	"github.com/octofit-hub/octofit-tracker/internal/infrastructure/messaging"
	"github.com/octofit-hub/octofit-tracker/internal/infrastructure/observability"
	"github.com/octofit-hub/octofit-tracker/internal/infrastructure/persistence/postgres"
	"github.com/octofit-hub/octofit-tracker/internal/infrastructure/persistence/redis"
	"github.com/octofit-hub/octofit-tracker/internal/infrastructure/scheduler"
	"github.com/octofit-hub/octofit-tracker/internal/infrastructure/scheduler/jobs"
	httpapi "github.com/octofit-hub/octofit-tracker/internal/interface/http"
	"github.com/octofit-hub/octofit-tracker/internal/interface/http/handlers"
	"github.com/octofit-hub/octofit-tracker/pkg/circuitbreaker"
	"github.com/octofit-hub/octofit-tracker/pkg/logger"
	"github.com/octofit-hub/octofit-tracker/pkg/retry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION BOOTSTRAP
// ══════════════════════════════════════════════════════════════════════════════

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. Load configuration
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. Setup logging
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output: os.Stdout,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
	})
	slogger := setupSlog(cfg)

	log.Info("starting octofit tracker api",
		logger.String("environment", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("addr", cfg.HTTP.Addr),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. Connect to PostgreSQL and migrate
	// ─────────────────────────────────────────────────────────────────────────
	conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()

	// The database may still be starting; wait for it instead of dying.
	if err := retry.StartupRetrier().Do(ctx, conn.Ping); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	log.Info("connected to postgres")

	if cfg.Database.MigrateOnStart {
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations applied")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. Connect to Redis (optional, leaderboard cache)
	// ─────────────────────────────────────────────────────────────────────────
	var (
		cache   *redis.Cache
		lbCache leaderboard.Cache
	)
	if !cfg.Redis.Disabled && cfg.Features.IsEnabled(config.FeatureLeaderboardCache) {
		cache, err = redis.NewCache(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			// The leaderboard falls back to store reads without Redis.
			log.Warn("redis unavailable, continuing without leaderboard cache", logger.Err(err))
			cache = nil
		} else {
			defer cache.Close()
			// The breaker turns a flapping Redis into plain cache misses.
			lbCache = redis.NewGuardedLeaderboardCache(
				redis.NewLeaderboardCache(cache),
				func(name string, from, to circuitbreaker.State) {
					log.Warn("cache breaker state changed",
						logger.String("breaker", name),
						logger.String("from", from.String()),
						logger.String("to", to.String()),
					)
				},
			)
			log.Info("connected to redis")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. Repositories
	// ─────────────────────────────────────────────────────────────────────────
	profileRepo := postgres.NewProfileRepository(conn)
	teamRepo := postgres.NewTeamRepository(conn)
	activityRepo := postgres.NewActivityRepository(conn)
	ledger := postgres.NewPointsLedger(conn)
	lbRepo := postgres.NewLeaderboardRepository(conn)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. Event bus and subscriptions
	// ─────────────────────────────────────────────────────────────────────────
	busCfg := messaging.DefaultInMemoryEventBusConfig()
	busCfg.Logger = slogger
	bus := messaging.NewInMemoryEventBus(busCfg)
	defer bus.Close()

	if lbCache != nil {
		onPoints := eventhandler.NewOnPointsAppliedHandler(lbCache, log)
		if err := bus.Subscribe(shared.EventPointsApplied, onPoints.Handle); err != nil {
			return fmt.Errorf("subscribe points handler: %w", err)
		}
	}
	if cfg.Observability.MetricsEnabled {
		onLogged := eventhandler.NewOnActivityLoggedHandler(observability.RecordActivityLogged)
		if err := bus.Subscribe(shared.EventActivityLogged, onLogged.Handle); err != nil {
			return fmt.Errorf("subscribe activity handler: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. Command and query handlers
	// ─────────────────────────────────────────────────────────────────────────
	getLeaderboard := query.NewGetLeaderboardHandler(lbRepo, lbCache, log)
	if cfg.Observability.MetricsEnabled {
		getLeaderboard = getLeaderboard.WithReadRecorder(observability.RecordLeaderboardRead)
	}

	deps := httpapi.Dependencies{
		CreateProfile:  command.NewCreateProfileHandler(profileRepo, bus),
		UpdateProfile:  command.NewUpdateProfileHandler(profileRepo),
		DeleteProfile:  command.NewDeleteProfileHandler(profileRepo),
		CreateTeam:     command.NewCreateTeamHandler(teamRepo, bus),
		DeleteTeam:     command.NewDeleteTeamHandler(teamRepo),
		JoinTeam:       command.NewJoinTeamHandler(profileRepo, teamRepo, bus),
		LeaveTeam:      command.NewLeaveTeamHandler(profileRepo),
		LogActivity:    command.NewLogActivityHandler(profileRepo, ledger, bus),
		DeleteActivity: command.NewDeleteActivityHandler(activityRepo),

		GetProfile:         query.NewGetProfileHandler(profileRepo),
		ListProfiles:       query.NewListProfilesHandler(profileRepo),
		GetTeam:            query.NewGetTeamHandler(teamRepo),
		ListTeams:          query.NewListTeamsHandler(teamRepo),
		GetTeamSummary:     query.NewGetTeamSummaryHandler(teamRepo),
		ListActivities:     query.NewListActivitiesHandler(activityRepo),
		GetActivitySummary: query.NewGetActivitySummaryHandler(profileRepo, activityRepo),
		GetSuggestions:     query.NewGetSuggestionsHandler(profileRepo, activityRepo),
		GetLeaderboard:     getLeaderboard,

		Features: cfg.Features,
		Logger:   log,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. Scheduler and rebuild job
	// ─────────────────────────────────────────────────────────────────────────
	var sched *scheduler.Scheduler
	if lbCache != nil {
		jobCfg := jobs.DefaultRebuildLeaderboardConfig()
		jobCfg.Timeout = cfg.Scheduler.JobTimeout
		if cfg.Observability.MetricsEnabled {
			jobCfg.OnRebuilt = observability.RecordLeaderboardRebuild
		}
		rebuildJob := jobs.NewRebuildLeaderboardJob(lbRepo, lbCache, bus, slogger, jobCfg)
		deps.RunRebuild = rebuildJob.Run

		if cfg.Scheduler.Enabled && cfg.Features.IsEnabled(config.FeatureLeaderboardRebuild) {
			var schedule scheduler.Schedule = scheduler.NewIntervalSchedule(cfg.Scheduler.RebuildLeaderboardInterval)
			if expr := cfg.Scheduler.RebuildLeaderboardCron; expr != "" {
				schedule, err = scheduler.ParseCronExpression(expr)
				if err != nil {
					return fmt.Errorf("parse rebuild cron: %w", err)
				}
			}

			schedCfg := scheduler.DefaultSchedulerConfig()
			schedCfg.Logger = slogger
			sched = scheduler.NewScheduler(schedCfg)
			if err := sched.Register(rebuildJob, schedule); err != nil {
				return fmt.Errorf("register rebuild job: %w", err)
			}
			if err := sched.Start(ctx); err != nil {
				return fmt.Errorf("start scheduler: %w", err)
			}
			log.Info("scheduler started", logger.String("schedule", schedule.String()))
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. Health checks and HTTP server
	// ─────────────────────────────────────────────────────────────────────────
	health := handlers.NewCompositeHealthChecker(cfg.App.Version)
	health.AddCheck("database", handlers.NewDatabaseCheck(conn))
	if cache != nil {
		health.AddCheck("redis", handlers.NewCacheCheck(cache))
	}
	deps.HealthChecker = health

	srvCfg := httpapi.DefaultConfig()
	srvCfg.Addr = cfg.HTTP.Addr
	srvCfg.ReadTimeout = cfg.HTTP.ReadTimeout
	srvCfg.WriteTimeout = cfg.HTTP.WriteTimeout
	srvCfg.IdleTimeout = cfg.HTTP.IdleTimeout
	srvCfg.EnableMetrics = cfg.Observability.MetricsEnabled
	srvCfg.AdminKeyHash = cfg.HTTP.AdminKeyHash

	srv := httpapi.NewServer(srvCfg, deps)
	errCh := srv.StartAsync()
	log.Info("http server listening", logger.String("addr", srvCfg.Addr))

	// ─────────────────────────────────────────────────────────────────────────
	// 10. Wait for shutdown
	// ─────────────────────────────────────────────────────────────────────────
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(); err != nil {
			log.Warn("scheduler stop failed", logger.Err(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown failed", logger.Err(err))
	}

	log.Info("shutdown complete")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LOGGING SETUP
// ══════════════════════════════════════════════════════════════════════════════

// setupSlog builds the slog logger used by infrastructure components
// (scheduler, event bus) that log through the standard structured logger.
func setupSlog(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Observability.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", string(cfg.App.Environment)),
	)
}
