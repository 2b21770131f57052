package migrations

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultRegistry is the global migration registry
var DefaultRegistry = NewRegistry()

// MigrationRegistryImpl implements MigrationRegistry
type MigrationRegistryImpl struct {
	mu         sync.RWMutex
	migrations map[float64]MajorMigrationInterface
}

func NewRegistry() *MigrationRegistryImpl {
	return &MigrationRegistryImpl{migrations: make(map[float64]MajorMigrationInterface)}
}

// Register adds a migration. Two migrations for the same version is a programming error.
func (r *MigrationRegistryImpl) Register(migration MajorMigrationInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	version := migration.GetMajorVersion()
	if _, exists := r.migrations[version]; exists {
		panic(fmt.Sprintf("migration for version %.0f registered twice", version))
	}
	r.migrations[version] = migration
}

// GetMigrations returns all registered migrations sorted by version
func (r *MigrationRegistryImpl) GetMigrations() []MajorMigrationInterface {
	r.mu.RLock()
	defer r.mu.RUnlock()

	migrations := make([]MajorMigrationInterface, 0, len(r.migrations))
	for _, migration := range r.migrations {
		migrations = append(migrations, migration)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].GetMajorVersion() < migrations[j].GetMajorVersion()
	})
	return migrations
}

func (r *MigrationRegistryImpl) GetMigration(version float64) (MajorMigrationInterface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	migration, exists := r.migrations[version]
	return migration, exists
}

// Register adds a migration to the default registry
func Register(migration MajorMigrationInterface) {
	DefaultRegistry.Register(migration)
}
