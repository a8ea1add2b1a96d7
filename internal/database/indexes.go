package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds query-critical indexes beyond what AutoMigrate declares.
// Only runs against Postgres; pg_indexes is used to keep it idempotent.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Note listing: visibility filter plus pinned-first ordering
		{"notes", "idx_notes_user_id_is_pinned", "user_id, is_pinned"},
		{"notes", "idx_notes_is_global", "is_global"},

		// Task workflow views
		{"tasks", "idx_tasks_owner_is_done", "owner_user_id, is_done"},
		{"tasks", "idx_tasks_is_global", "is_global"},

		// Chat history pagination
		{"messages", "idx_messages_chat_id_created_at", "chat_id, created_at"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
