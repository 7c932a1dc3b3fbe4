package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// schemaMigration records one applied schema version. The current version of
// a database file is the highest recorded version.
type schemaMigration struct {
	Version   int   `gorm:"primaryKey"`
	AppliedAt int64 // epoch millis
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// migration is a single version step. Each step adds exactly the collections
// and indexes introduced at that version; steps never drop prior data, so a
// database created at any older version upgrades in place.
type migration struct {
	version int
	name    string
	run     func(tx *gorm.DB) error
}

var migrations = []migration{
	{
		version: 1,
		name:    "create classes and documents",
		run: func(tx *gorm.DB) error {
			if err := tx.Exec(`CREATE TABLE IF NOT EXISTS classes
				(
					id text PRIMARY KEY,
					name text NOT NULL,
					date_created integer NOT NULL,
					is_pinned numeric DEFAULT false,
					document_count integer DEFAULT 0,
					done_count integer DEFAULT 0
				)`).Error; err != nil {
				return fmt.Errorf("creating classes table: %w", err)
			}

			if err := tx.Exec(`CREATE TABLE IF NOT EXISTS documents
				(
					id integer PRIMARY KEY AUTOINCREMENT,
					name text NOT NULL,
					size integer DEFAULT 0,
					last_modified integer DEFAULT 0,
					date_added integer NOT NULL,
					data blob,
					status text NOT NULL DEFAULT 'to-study',
					class_id text NOT NULL
				)`).Error; err != nil {
				return fmt.Errorf("creating documents table: %w", err)
			}

			return tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_classes_name ON classes(name);
				CREATE INDEX IF NOT EXISTS idx_classes_date_created ON classes(date_created);
				CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
				CREATE INDEX IF NOT EXISTS idx_documents_date_added ON documents(date_added);
				CREATE INDEX IF NOT EXISTS idx_documents_class_id ON documents(class_id);`).Error
		},
	},
	{
		version: 2,
		name:    "add notes, manual ordering and pin index",
		run: func(tx *gorm.DB) error {
			// Rows that predate this version keep order_index NULL; the
			// document repository sorts them after ordered rows.
			if err := tx.Exec(`ALTER TABLE classes ADD COLUMN notes text NOT NULL DEFAULT ''`).Error; err != nil {
				return fmt.Errorf("adding classes.notes: %w", err)
			}
			if err := tx.Exec(`ALTER TABLE documents ADD COLUMN order_index integer`).Error; err != nil {
				return fmt.Errorf("adding documents.order_index: %w", err)
			}
			return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_classes_is_pinned ON classes(is_pinned)`).Error
		},
	},
}

// migrate brings db up to the latest schema version and returns the resulting
// version. Already-applied steps are skipped, so migrate is idempotent.
func migrate(db *gorm.DB) (int, error) {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return 0, fmt.Errorf("creating schema_migrations table: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return 0, err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{
				Version:   m.version,
				AppliedAt: time.Now().UnixMilli(),
			}).Error
		})
		if err != nil {
			return current, fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}

		current = m.version
	}

	return current, nil
}

func currentVersion(db *gorm.DB) (int, error) {
	var version *int
	if err := db.Model(&schemaMigration{}).Select("MAX(version)").Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}
