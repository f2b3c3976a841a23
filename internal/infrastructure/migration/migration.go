package migration

import (
	"fmt"
	"path/filepath"

	"gorm.io/gorm"

	"cheki/internal/infrastructure/persistence/models"
	"cheki/internal/shared/logger"
)

// Manager picks a migration strategy from the environment and the
// configured database driver and applies the schema.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager creates a migration manager. Development environments use
// GORM AutoMigrate; everything else runs versioned SQL scripts, through
// golang-migrate on mysql and goose on sqlite.
func NewManager(environment, driver, scriptsPath string) *Manager {
	var strategy Strategy
	switch {
	case environment == "development":
		strategy = NewGormAutoMigrateStrategy()
	case driver == "mysql":
		strategy = NewGolangMigrateStrategy(scriptsPath)
	default:
		strategy = NewGooseStrategy(filepath.Join(scriptsPath, "goose"), "sqlite3")
	}

	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Run applies pending migrations for all registered models.
func (m *Manager) Run(db *gorm.DB) error {
	m.logger.Infow("running migrations", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, allModels()...); err != nil {
		return fmt.Errorf("migration strategy %s failed: %w", m.strategy.GetName(), err)
	}

	return nil
}

// allModels lists every persisted model for AutoMigrate.
func allModels() []interface{} {
	return []interface{}{
		&models.SessionTokenModel{},
	}
}
