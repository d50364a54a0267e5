package app

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/james-henry-git/nhl-stats-tracker/external/nhlapi"
	"github.com/james-henry-git/nhl-stats-tracker/internal/config"
	"github.com/james-henry-git/nhl-stats-tracker/internal/infrastructure/repository/postgres"
	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/logging"
	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/resilience"
	"github.com/james-henry-git/nhl-stats-tracker/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// Application wires the provider, repositories, and services together.
type Application struct {
	Config  config.Config
	Logger  *logging.Logger
	DB      *sqlx.DB
	Client  *nhlapi.Client
	Sync    *usecase.SyncService
	Summary *usecase.SummaryService
}

// New opens the database, builds the NHL client, and assembles the
// service graph. The caller owns Close.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := nhlapi.NewClient(nhlapi.ClientConfig{
		APIBaseURL:    cfg.NHLAPIBaseURL,
		StatsBaseURL:  cfg.NHLStatsBaseURL,
		LegacyBaseURL: cfg.NHLLegacyBaseURL,
		UserAgent:     cfg.ServiceName + "/" + cfg.ServiceVersion,
		Timeout:       cfg.NHLAPITimeout,
		MaxRetries:    cfg.NHLAPIMaxRetries,
		Logger:        logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailures,
			OpenTimeout:      cfg.NHLCircuitOpenFor,
			HalfOpenMaxReq:   cfg.NHLCircuitHalfOpenReq,
		},
	})

	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	teamStatsRepo := postgres.NewTeamStatsRepository(db)
	playerStatsRepo := postgres.NewPlayerStatsRepository(db)
	fetchLogRepo := postgres.NewFetchLogRepository(db)

	syncService := usecase.NewSyncService(
		client,
		teamRepo,
		playerRepo,
		teamStatsRepo,
		playerStatsRepo,
		fetchLogRepo,
		logger,
	)
	summaryService := usecase.NewSummaryService(
		teamRepo,
		playerRepo,
		teamStatsRepo,
		playerStatsRepo,
		fetchLogRepo,
		logger,
	)

	return &Application{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Client:  client,
		Sync:    syncService,
		Summary: summaryService,
	}, nil
}

func (a *Application) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}

	return a.DB.Close()
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.ServiceName)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping database")
	}

	return db, nil
}
