package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"fluffyshare/internal/api"
	"fluffyshare/internal/cache"
	"fluffyshare/internal/config"
	"fluffyshare/internal/domain"
	"fluffyshare/internal/leaderboard"
	"fluffyshare/internal/publisher"
	"fluffyshare/internal/scheduler"
	"fluffyshare/internal/scoring"
	"fluffyshare/internal/service"
	"fluffyshare/internal/snapshot"
	"fluffyshare/internal/source/twitter"
	"fluffyshare/internal/storage/postgres"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run the pipeline once and exit")
	runType := flag.String("run-type", string(domain.RunDailyBatch), "run type recorded for -once runs")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if !domain.RunType(*runType).Valid() {
		logger.Error("invalid run type", "run_type", *runType)
		os.Exit(2)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Run events are optional
	var runPublisher service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		runPublisher = rabbitMQ
	}

	var responseCache cache.Cache = cache.NewMemory()
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.KeyPrefix)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		responseCache = redisCache
		logger.Info("connected to redis")
	}

	// Initialize stores
	tweetStore := postgres.NewTweetStore(db)
	accountStore := postgres.NewAccountStore(db)
	scoreStore := postgres.NewScoreStore(db)
	logStore := postgres.NewProcessingLogStore(db)
	retentionStore := postgres.NewRetentionStore(db)
	leaderboardStore := postgres.NewLeaderboardStore(db)
	txManager := postgres.NewTransactionManager(db)

	client := twitter.New(twitter.Config{
		BaseURL:           cfg.Twitter.BaseURL,
		APIKey:            cfg.Twitter.APIKey,
		APIKeyHeader:      cfg.Twitter.APIKeyHeader,
		Query:             cfg.Twitter.Query,
		PageSize:          cfg.Twitter.PageSize,
		Timeout:           cfg.Twitter.Timeout,
		RequestsPerSecond: cfg.Twitter.RequestsPerSecond,
		Burst:             cfg.Twitter.Burst,
		MaxAttempts:       cfg.Twitter.Retry.MaxAttempts,
		InitialBackoff:    cfg.Twitter.Retry.InitialBackoff,
		MaxBackoff:        cfg.Twitter.Retry.MaxBackoff,
	}, logger)

	snapshots := snapshot.NewWriter(
		cfg.Snapshot.Dir,
		cfg.Snapshot.Windows,
		cfg.Snapshot.Limit,
		cfg.Scoring.DailyCapPerAccount,
		leaderboardStore,
		logger,
	)

	processor := service.NewProcessor(
		client,
		service.Stores{
			Tweets:    tweetStore,
			Accounts:  accountStore,
			Scores:    scoreStore,
			Logs:      logStore,
			Retention: retentionStore,
		},
		txManager,
		snapshots,
		runPublisher,
		responseCache,
		scoring.NewEngine(cfg.Scoring),
		logger,
		cfg.Processor,
		cfg.Retention,
	)

	if *once {
		run, err := processor.Run(ctx, domain.RunType(*runType))
		if err != nil {
			logger.Error("run failed", "error", err)
			os.Exit(1)
		}
		logger.Info("run finished", "run_id", run.ID, "scores", run.ScoresComputed)
		return
	}

	if latest, err := logStore.Latest(ctx); err != nil {
		logger.Warn("failed to read last run", "error", err)
	} else if latest != nil {
		logger.Info("last run", "run_id", latest.ID, "status", latest.Status, "started_at", latest.StartedAt)
	}

	reader := leaderboard.NewReader(
		leaderboardStore,
		responseCache,
		cfg.Snapshot.Dir,
		cfg.Snapshot.Windows,
		cfg.Scoring.DailyCapPerAccount,
		cfg.Cache.TTL,
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(
		api.NewHandler(reader, processor, cfg.HTTP.AdminToken, logger),
		cfg.HTTP.AllowedOrigins,
		logger,
	)
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sched, err := scheduler.NewScheduler(processor, cfg.Schedule.Timezone, logger)
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}
	if err := sched.Schedule(cfg.Schedule.Cron); err != nil {
		logger.Error("failed to schedule daily run", "error", err)
		os.Exit(1)
	}

	logger.Info("starting fluffyshare",
		"query", cfg.Twitter.Query,
		"cron", cfg.Schedule.Cron,
		"timezone", cfg.Schedule.Timezone,
		"max_tweets", cfg.Processor.MaxTweetsPerRun,
	)

	schedErr := sched.Start(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}

	if processor.Running() {
		logger.Info("waiting for active run to finish")
	}
	if err := processor.Wait(shutdownCtx); err != nil {
		logger.Error("active run did not finish before shutdown", "error", err)
	}

	if schedErr != nil && !errors.Is(schedErr, context.Canceled) {
		logger.Error("scheduler error", "error", schedErr)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
