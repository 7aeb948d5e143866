package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wander/internal/pkg/config"
)

//go:embed migrations
var migrationFS embed.FS

const pingAttempts = 5

// WaitForDB pings the pool with a short backoff until the database answers.
func WaitForDB(ctx context.Context, pgpool *pgxpool.Pool, logger *zap.Logger) bool {
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err := pgpool.Ping(ctx); err == nil {
			logger.Info("Database connection successful")
			return true
		} else {
			waitDuration := time.Duration(attempt) * 200 * time.Millisecond
			logger.Warn("Database ping failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", pingAttempts),
				zap.Duration("wait_duration", waitDuration),
				zap.Error(err),
			)
			if attempt < pingAttempts {
				time.Sleep(waitDuration)
			}
		}
	}
	logger.Error("Database connection failed after multiple retries")
	return false
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(databaseURL string, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	goose.SetBaseFS(migrationFS)

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("sql.Open failed: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose.Up failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// ConnectionURL builds the postgres connection string from config.
func ConnectionURL(cfg *config.Config) (string, error) {
	pg := cfg.Repositories.Postgres
	if pg.Host == "" {
		return "", fmt.Errorf("postgres configuration is missing or invalid")
	}

	query := url.Values{}
	query.Set("sslmode", pg.SSLMode)
	query.Set("timezone", "utc")

	connURL := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(pg.Username, pg.Password),
		Host:     fmt.Sprintf("%s:%s", pg.Host, pg.Port),
		Path:     pg.DB,
		RawQuery: query.Encode(),
	}
	return connURL.String(), nil
}

// Init creates the pgxpool connection pool.
func Init(connectionURL string, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	logger.Info("Initializing database connection pool...")
	poolCfg, err := pgxpool.ParseConfig(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed parsing db config: %w", err)
	}
	poolCfg.MaxConns = cfg.Repositories.Postgres.MaxConns
	poolCfg.MinConns = cfg.Repositories.Postgres.MinConns

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed creating db pool: %w", err)
	}

	logger.Info("Database connection pool initialized")
	return pool, nil
}
