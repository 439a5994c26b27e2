package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddIndexes adds the history lookup indexes. Only postgres is handled;
// other drivers are skipped.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		log.WithField("driver", db.Dialector.Name()).Debug("Skipping index creation")
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Run history is listed newest first
		{"bulk_upload_runs", "idx_bulk_upload_runs_created_at", "created_at"},
		{"bulk_upload_runs", "idx_bulk_upload_runs_actor_id", "actor_id"},

		// Rows are loaded per run in file order
		{"bulk_upload_rows", "idx_bulk_upload_rows_run_line", "run_id, line_number"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithField("index", idx.name).Infof("Created index on %s(%s)", idx.table, idx.columns)
	}

	return nil
}

// MigrateDatabase runs the migrations that AutoMigrate does not cover
func MigrateDatabase(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
