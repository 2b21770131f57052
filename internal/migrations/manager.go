package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/relasjon/crm/config"
	"github.com/relasjon/crm/internal/database"
	"github.com/relasjon/crm/pkg/logger"
)

// ErrRestartRequired is returned when a migration requires a server restart
var ErrRestartRequired = errors.New("migration completed successfully - server restart required")

// SchemaInitializer creates the current schema on an empty database
type SchemaInitializer func(ctx context.Context, db *sql.DB) error

// Manager implements MigrationManager
type Manager struct {
	logger     logger.Logger
	registry   MigrationRegistry
	initialize SchemaInitializer
}

// NewManager creates a migration manager over the default registry
func NewManager(logger logger.Logger) *Manager {
	return &Manager{
		logger:     logger,
		registry:   DefaultRegistry,
		initialize: database.InitializeDatabase,
	}
}

// NewManagerWithRegistry is NewManager with an explicit registry and initializer
func NewManagerWithRegistry(logger logger.Logger, registry MigrationRegistry, initialize SchemaInitializer) *Manager {
	return &Manager{logger: logger, registry: registry, initialize: initialize}
}

// GetCurrentDBVersion retrieves the current database version from settings
// table. A database without the settings table has no version.
func (m *Manager) GetCurrentDBVersion(ctx context.Context, db *sql.DB) (float64, error, bool) {
	var hasSettings bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('settings') IS NOT NULL").Scan(&hasSettings); err != nil {
		return 0, fmt.Errorf("failed to inspect settings table: %w", err), false
	}
	if !hasSettings {
		return 0, nil, false
	}

	var versionStr string
	err := db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = 'db_version'").Scan(&versionStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, false
		}
		return 0, fmt.Errorf("failed to get current database version: %w", err), false
	}

	version, err := strconv.ParseFloat(versionStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid database version format '%s': %w", versionStr, err), false
	}

	return version, nil, true
}

// SetCurrentDBVersion updates the current database version in settings table
func (m *Manager) SetCurrentDBVersion(ctx context.Context, db DBExecutor, version float64) error {
	versionStr := fmt.Sprintf("%.0f", version)

	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ('db_version', $1)
		ON CONFLICT (key) DO UPDATE SET
			value = $1,
			updated_at = CURRENT_TIMESTAMP
	`, versionStr)
	if err != nil {
		return fmt.Errorf("failed to set database version to %s: %w", versionStr, err)
	}

	m.logger.WithField("version", versionStr).Info("Database version updated")
	return nil
}

// RunMigrations executes every registered migration newer than the stored
// version. A database without a version is created from the current schema,
// which already includes every migration.
func (m *Manager) RunMigrations(ctx context.Context, cfg *config.Config, db *sql.DB) error {
	m.logger.Info("Starting migration process")

	currentDBVersion, err, versionExists := m.GetCurrentDBVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get current database version: %w", err)
	}

	currentCodeVersion, err := GetCurrentCodeVersion()
	if err != nil {
		return fmt.Errorf("failed to get current code version: %w", err)
	}

	if !versionExists {
		m.logger.WithField("code_version", fmt.Sprintf("%.0f", currentCodeVersion)).Info("First run detected, creating schema")
		if err := m.initialize(ctx, db); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		if err := m.SetCurrentDBVersion(ctx, db, currentCodeVersion); err != nil {
			return fmt.Errorf("failed to initialize database version: %w", err)
		}
		return nil
	}

	m.logger.WithField("db_version", fmt.Sprintf("%.0f", currentDBVersion)).
		WithField("code_version", fmt.Sprintf("%.0f", currentCodeVersion)).
		Info("Version comparison")

	if currentDBVersion >= currentCodeVersion {
		m.logger.Info("Database is up to date, no migrations needed")
		return nil
	}

	var migrationsToRun []MajorMigrationInterface
	for _, migration := range m.registry.GetMigrations() {
		v := migration.GetMajorVersion()
		if v > currentDBVersion && v <= currentCodeVersion {
			migrationsToRun = append(migrationsToRun, migration)
		}
	}

	m.logger.WithField("count", len(migrationsToRun)).Info("Migrations to execute")

	requiresRestart := false
	for _, migration := range migrationsToRun {
		if err := m.executeMigration(ctx, cfg, db, migration); err != nil {
			return fmt.Errorf("migration failed for version %.0f: %w", migration.GetMajorVersion(), err)
		}
		if migration.ShouldRestartServer() {
			requiresRestart = true
		}
	}

	if err := m.SetCurrentDBVersion(ctx, db, currentCodeVersion); err != nil {
		return fmt.Errorf("failed to update database version after migrations: %w", err)
	}

	m.logger.WithField("version", fmt.Sprintf("%.0f", currentCodeVersion)).Info("Migration process completed successfully")

	if requiresRestart {
		m.logger.Info("Migrations completed - server restart required to reload configuration")
		return ErrRestartRequired
	}
	return nil
}

// executeMigration runs one migration and records its version in the same transaction
func (m *Manager) executeMigration(ctx context.Context, cfg *config.Config, db *sql.DB, migration MajorMigrationInterface) error {
	version := migration.GetMajorVersion()
	m.logger.WithField("version", fmt.Sprintf("%.0f", version)).
		WithField("description", migration.Description()).
		Info("Executing migration")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := migration.Update(ctx, cfg, tx); err != nil {
		return err
	}
	if err := m.SetCurrentDBVersion(ctx, tx, version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration transaction: %w", err)
	}

	m.logger.WithField("version", fmt.Sprintf("%.0f", version)).Info("Migration completed successfully")
	return nil
}
