package database

import (
	"fmt"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/logging"
	"gorm.io/gorm"
)

// AddIndexes adds the listing indexes not expressed in model tags
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Newest-first listings
		{"tasks", "idx_tasks_created_at", "created_at"},
		{"users", "idx_users_created_at", "created_at"},
		{"payments", "idx_payments_created_at", "created_at"},
		{"comments", "idx_comments_created_at", "created_at"},

		// Review queue: pending submissions per creator
		{"submissions", "idx_submissions_creator_status", "creator_email, status"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logging.Logger.Infof("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
