package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/north-cloud/prospector/internal/config"
	"github.com/jonesrussell/north-cloud/prospector/internal/database"
	"github.com/jonesrussell/north-cloud/prospector/internal/engine"
	"github.com/jonesrussell/north-cloud/prospector/internal/enrich"
	"github.com/jonesrussell/north-cloud/prospector/internal/fetcher"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/jonesrussell/north-cloud/prospector/internal/metrics"
	"github.com/jonesrussell/north-cloud/prospector/internal/search"
	"github.com/jonesrussell/north-cloud/prospector/internal/sources"
)

// app holds the process-wide dependencies shared by the commands.
type app struct {
	cfg      *config.Config
	log      logger.Logger
	db       *sqlx.DB
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	jobs      *database.JobRepository
	logs      *database.LogRepository
	companies *database.CompanyRepository
	contacts  *database.ContactRepository
	queue     *database.QueueRepository

	search *search.Client
	engine *engine.Engine

	redis    *redis.Client
	keyReset *cron.Cron
}

// newApp loads configuration, builds the logger and connects to PostgreSQL.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	log = log.With(
		logger.String("service", cfg.App.Name),
		logger.String("version", versionString(cfg)),
	)

	db, err := database.NewPostgresConnection(ctx, database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("Connected to database",
		logger.String("host", cfg.Database.Host),
		logger.String("database", cfg.Database.DBName),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &app{
		cfg:       cfg,
		log:       log,
		db:        db,
		registry:  registry,
		metrics:   metrics.New(registry),
		jobs:      database.NewJobRepository(db),
		logs:      database.NewLogRepository(db),
		companies: database.NewCompanyRepository(db),
		contacts:  database.NewContactRepository(db),
		queue:     database.NewQueueRepository(db),
	}, nil
}

// withSearch builds the search client with key rotation and the optional
// Redis response cache. It does not start the key reset schedule.
func (a *app) withSearch() {
	if a.search != nil {
		return
	}

	keys := search.NewKeyRotator(search.ParseKeys(a.cfg.Search.APIKeys), a.log, a.metrics)
	opts := []search.Option{search.WithMetrics(a.metrics)}

	if a.cfg.Redis.Enabled() {
		client, err := search.NewRedisClient(search.RedisConfig{
			Address:  a.cfg.Redis.Address,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			a.log.Warn("Search cache disabled", logger.Error(err))
		} else {
			a.redis = client
			opts = append(opts, search.WithCache(search.NewRedisCache(client, a.cfg.Search.CacheTTL)))
		}
	}

	a.search = search.NewClient(search.Config{
		BaseURL: a.cfg.Search.BaseURL,
		Timeout: a.cfg.Search.Timeout,
	}, keys, a.log, opts...)

	if !a.search.Available() {
		a.log.Warn("No search API keys configured; search sources and enrichment lookups are disabled")
	}
}

// withEngine wires the fetcher, the sources and the enricher into a job engine.
func (a *app) withEngine() {
	if a.engine != nil {
		return
	}
	a.withSearch()

	scraper := a.cfg.Scraper
	fetchOpts := []fetcher.Option{
		fetcher.WithGate(fetcher.NewGate(scraper.DelayMin, scraper.DelayMax)),
		fetcher.WithMetrics(a.metrics),
	}
	if scraper.RespectRobotsTxt {
		checker := fetcher.NewRobotsChecker(&http.Client{Timeout: scraper.RequestTimeout}, fetcher.DefaultRobotsAgent, scraper.RobotsCacheTTL)
		fetchOpts = append(fetchOpts, fetcher.WithRobotsChecker(checker))
	}
	pages := fetcher.NewClient(fetcher.Config{
		DelayMin:         scraper.DelayMin,
		DelayMax:         scraper.DelayMax,
		RequestTimeout:   scraper.RequestTimeout,
		MaxRetries:       scraper.MaxRetries,
		RespectRobotsTxt: scraper.RespectRobotsTxt,
		RobotsCacheTTL:   scraper.RobotsCacheTTL,
	}, a.log, fetchOpts...)

	a.engine = engine.New(engine.Config{
		MaxConcurrentJobs:   a.cfg.Engine.MaxConcurrentJobs,
		ContactBatchSize:    a.cfg.Engine.ContactBatchSize,
		EnableEmailPatterns: a.cfg.Engine.EnableEmailPatterns,
		StatusPollInterval:  a.cfg.Engine.StatusPollInterval,
	}, engine.Deps{
		Jobs:      a.jobs,
		Logs:      a.logs,
		Companies: a.companies,
		Contacts:  a.contacts,
		Queue:     a.queue,
		Sources:   sources.NewDefaultRegistry(a.search, pages, a.log),
		Enricher:  enrich.New(a.search, a.log),
		Fetcher:   pages,
		Metrics:   a.metrics,
		Logger:    a.log,
	})
}

// scheduleKeyReset starts the periodic search key reset.
func (a *app) scheduleKeyReset() error {
	a.withSearch()

	c, err := search.ScheduleKeyReset(a.cfg.Search.KeyResetCron, a.search.Keys(), a.log)
	if err != nil {
		return err
	}
	a.keyReset = c
	a.log.Info("Scheduled search key reset", logger.String("schedule", a.cfg.Search.KeyResetCron))
	return nil
}

// migrate applies pending schema migrations.
func (a *app) migrate(ctx context.Context) error {
	if err := database.Migrate(ctx, a.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	version, err := database.MigrationVersion(ctx, a.db)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	a.log.Info("Database schema up to date", logger.Int64("version", version))
	return nil
}

// close stops background work and releases connections.
func (a *app) close(ctx context.Context) error {
	var errs []error

	if a.engine != nil {
		if err := a.engine.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.keyReset != nil {
		<-a.keyReset.Stop().Done()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	_ = a.log.Sync()

	return errors.Join(errs...)
}

func versionString(cfg *config.Config) string {
	if version != "" && version != "dev" {
		return version
	}
	return cfg.App.Version
}
