package app

import (
	"context"
	"crypto/tls"
	"database/sql"
	"log/slog"
	"net/http"

	"IssueRadar/internal/config"
	"IssueRadar/internal/infrastructure/feed"
	cronsched "IssueRadar/internal/infrastructure/scheduler"
	"IssueRadar/internal/infrastructure/storage"
	"IssueRadar/internal/issue"
	"IssueRadar/internal/logging"
	"IssueRadar/internal/scanner"
	"IssueRadar/internal/trend"
	"IssueRadar/internal/usecase"
	"IssueRadar/pkg/logger"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
}

// New builds a runnable application instance: taxonomy, scanners, store,
// pipeline, and the cron scheduler.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	loc := cfg.Trend.Location()
	taxonomy := issue.Default()
	client := newHTTPClient(cfg.HTTP)

	registry := scanner.NewRegistry()
	registry.Register(feed.NewGoogleNewsScanner(client, loc))
	registry.Register(feed.NewYahooScanner(client, loc))
	source := feed.NewStrategySource(registry, cfg.Sources, baseLogger.With("component", "source"))

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	repository := storage.NewSQLiteRepository(db, taxonomy.Names())
	if err := repository.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Repository: repository,
		Clock:      trend.NewClock(loc),
		Aggregator: trend.NewAggregator(taxonomy, loc),
		Ranker:     trend.NewRanker(taxonomy, loc),
		Logger:     baseLogger.With("component", "pipeline"),
	})

	driver := cronsched.NewCronScheduler(cfg.Scheduler.CronExpression, logger.New("cron"))
	sched := usecase.NewScheduler(driver, pipeline, baseLogger.With("component", "scheduler"))

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		db:        db,
		pipeline:  pipeline,
		scheduler: sched,
	}, nil
}

// Run performs a single aggregation cycle and logs the resulting spike
// ranking for the current window.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	ws, we, err := a.pipeline.RunCurrentWindow(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("window stored", "window_start", ws, "window_end", we)

	rows, err := a.pipeline.ReadIssueWindows(ctx, a.cfg.Trend.LimitWindows)
	if err != nil {
		return err
	}

	ranks := a.pipeline.BuildIssueRank(rows, we, a.cfg.Trend.LookbackWindows)
	for i, rank := range ranks {
		if i >= 3 {
			break
		}
		a.logger.Info("issue spike",
			"issue", rank.Issue,
			"count", rank.CurrentCount,
			"mean", rank.Mean,
			"stddev", rank.StdDev,
			"spike_z", rank.SpikeZ)
	}
	return nil
}

// Serve runs one cycle immediately, then keeps recomputing on the configured
// cron cadence until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.Run(ctx); err != nil {
		a.logger.Error("initial cycle failed", "error", err)
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return a.scheduler.Stop(context.Background())
}

// Close releases the database handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newHTTPClient(cfg config.HTTPConfig) *http.Client {
	client := &http.Client{Timeout: cfg.Timeout()}
	if cfg.InsecureTLS {
		// Scoped to this client only; never patched process-wide.
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return client
}
