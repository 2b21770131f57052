package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/relasjon/crm/config"
)

// GetConnectionPoolSettings returns connection pool settings based on environment
func GetConnectionPoolSettings(cfg *config.DatabaseConfig) (maxOpen, maxIdle int, maxLifetime time.Duration) {
	environment := os.Getenv("ENVIRONMENT")

	// Use smaller pools for test environment to conserve connections
	if environment == "test" || os.Getenv("INTEGRATION_TESTS") == "true" {
		return 10, 5, 2 * time.Minute
	}

	maxOpen = 25
	if cfg != nil && cfg.MaxOpenConns > 0 {
		maxOpen = cfg.MaxOpenConns
	}
	return maxOpen, maxOpen, 20 * time.Minute
}

// GetDSN returns the connection string of the CRM database
func GetDSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// Connect opens and pings the database. With tracing enabled the driver is
// wrapped so every query becomes a span.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, traced bool) (*sql.DB, error) {
	driverName := "postgres"
	if traced {
		var err error
		driverName, err = ocsql.Register("postgres", ocsql.WithAllTraceOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to register traced driver: %w", err)
		}
	}

	db, err := sql.Open(driverName, GetDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings(cfg)
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	db.SetConnMaxIdleTime(maxLifetime / 2)

	return db, nil
}

// RejectsRowSecurityBypass fails when the connected role would skip row
// security: superusers and BYPASSRLS roles ignore every policy.
func RejectsRowSecurityBypass(ctx context.Context, db *sql.DB) error {
	var bypass bool
	err := db.QueryRowContext(ctx,
		"SELECT rolsuper OR rolbypassrls FROM pg_roles WHERE rolname = current_user").Scan(&bypass)
	if err != nil {
		return fmt.Errorf("failed to inspect database role: %w", err)
	}
	if bypass {
		return fmt.Errorf("database role bypasses row level security; connect as a regular role")
	}
	return nil
}
