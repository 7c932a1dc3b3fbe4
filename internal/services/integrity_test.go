package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studydesk/studydesk/internal/database"
	"github.com/studydesk/studydesk/internal/entities"
)

func setupIntegrityDB(t *testing.T) (*database.Database, func()) {
	dbPath := "./test_integrity_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func seedClass(t *testing.T, db *database.Database, id string, docCount, doneCount int) {
	err := db.Transact(func(tx *gorm.DB) error {
		return tx.Create(&entities.Class{
			ID:            id,
			Name:          "Class " + id,
			DateCreated:   entities.NowMillis(),
			DocumentCount: docCount,
			DoneCount:     doneCount,
		}).Error
	})
	require.NoError(t, err)
}

func seedDocument(t *testing.T, db *database.Database, classID string, status entities.DocumentStatus) {
	err := db.Transact(func(tx *gorm.DB) error {
		return tx.Create(&entities.Document{
			Name:      "doc.pdf",
			DateAdded: entities.NowMillis(),
			Status:    status,
			ClassID:   classID,
		}).Error
	})
	require.NoError(t, err)
}

func TestIntegrity_ConsistentCounters(t *testing.T) {
	db, cleanup := setupIntegrityDB(t)
	defer cleanup()

	seedClass(t, db, "c1", 2, 1)
	seedDocument(t, db, "c1", entities.StatusToStudy)
	seedDocument(t, db, "c1", entities.StatusDone)

	report, err := NewIntegrity(db).AuditAll(false)

	require.NoError(t, err)
	assert.Equal(t, 1, report.ClassesChecked)
	assert.Empty(t, report.Drifted)
}

func TestIntegrity_DetectsDriftWithoutRepair(t *testing.T) {
	db, cleanup := setupIntegrityDB(t)
	defer cleanup()

	// Stored counters disagree with the live documents, as if the file was
	// edited outside the application.
	seedClass(t, db, "c1", 5, 3)
	seedDocument(t, db, "c1", entities.StatusDone)

	report, err := NewIntegrity(db).AuditAll(false)

	require.NoError(t, err)
	require.Len(t, report.Drifted, 1)
	drift := report.Drifted[0]
	assert.Equal(t, "c1", drift.ClassID)
	assert.Equal(t, 5, drift.StoredDocs)
	assert.Equal(t, 1, drift.LiveDocs)
	assert.Equal(t, 3, drift.StoredDone)
	assert.Equal(t, 1, drift.LiveDone)

	// Without repair the stored counters are untouched.
	conn, err := db.Conn()
	require.NoError(t, err)
	var class entities.Class
	require.NoError(t, conn.Where("id = ?", "c1").First(&class).Error)
	assert.Equal(t, 5, class.DocumentCount)
}

func TestIntegrity_RepairRewritesCounters(t *testing.T) {
	db, cleanup := setupIntegrityDB(t)
	defer cleanup()

	seedClass(t, db, "c1", 0, 0)
	seedDocument(t, db, "c1", entities.StatusDone)
	seedDocument(t, db, "c1", entities.StatusToStudy)

	report, err := NewIntegrity(db).AuditAll(true)

	require.NoError(t, err)
	require.Len(t, report.Drifted, 1)
	assert.True(t, report.Repaired)

	conn, err := db.Conn()
	require.NoError(t, err)
	var class entities.Class
	require.NoError(t, conn.Where("id = ?", "c1").First(&class).Error)
	assert.Equal(t, 2, class.DocumentCount)
	assert.Equal(t, 1, class.DoneCount)
}

func TestIntegrity_EmptyStore(t *testing.T) {
	db, cleanup := setupIntegrityDB(t)
	defer cleanup()

	report, err := NewIntegrity(db).AuditAll(false)

	require.NoError(t, err)
	assert.Zero(t, report.ClassesChecked)
	assert.Empty(t, report.Drifted)
}
