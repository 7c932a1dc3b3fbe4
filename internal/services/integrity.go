package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/studydesk/studydesk/internal/database"
	"github.com/studydesk/studydesk/internal/entities"
)

// Drift describes one class whose stored counters disagree with the live
// document counts.
type Drift struct {
	ClassID       string `json:"class_id"`
	Name          string `json:"name"`
	StoredDocs    int    `json:"stored_docs"`
	LiveDocs      int    `json:"live_docs"`
	StoredDone    int    `json:"stored_done"`
	LiveDone      int    `json:"live_done"`
	OrphanedClass bool   `json:"orphaned_class,omitempty"`
}

// IntegrityReport summarizes one audit run.
type IntegrityReport struct {
	ClassesChecked int     `json:"classes_checked"`
	Drifted        []Drift `json:"drifted,omitempty"`
	Repaired       bool    `json:"repaired"`
}

// Integrity audits the derived counters against live document counts. The
// repositories keep the counters consistent transactionally; the audit is the
// operational safety net that detects and optionally repairs drift caused by
// external edits to the database file.
type Integrity struct {
	db *database.Database
}

// NewIntegrity creates an integrity auditor over db.
func NewIntegrity(db *database.Database) *Integrity {
	return &Integrity{db: db}
}

// AuditAll recounts every class's documents in one transaction. With repair
// set, drifted counters are rewritten to the live counts inside that same
// transaction.
func (s *Integrity) AuditAll(repair bool) (*IntegrityReport, error) {
	report := &IntegrityReport{Repaired: repair}

	err := s.db.Transact(func(tx *gorm.DB) error {
		var all []entities.Class
		if err := tx.Find(&all).Error; err != nil {
			return fmt.Errorf("listing classes for audit: %w", err)
		}

		for _, class := range all {
			report.ClassesChecked++

			drift, err := auditClass(tx, class, repair)
			if err != nil {
				return err
			}
			if drift != nil {
				report.Drifted = append(report.Drifted, *drift)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(report.Drifted) > 0 {
		log.Printf("Integrity audit: %d of %d classes drifted (repair=%v)",
			len(report.Drifted), report.ClassesChecked, repair)
	}
	return report, nil
}

func auditClass(tx *gorm.DB, class entities.Class, repair bool) (*Drift, error) {
	var liveDocs, liveDone int64
	if err := tx.Model(&entities.Document{}).
		Where("class_id = ?", class.ID).Count(&liveDocs).Error; err != nil {
		return nil, fmt.Errorf("counting documents of class %s: %w", class.ID, err)
	}
	if err := tx.Model(&entities.Document{}).
		Where("class_id = ? AND status = ?", class.ID, entities.StatusDone).
		Count(&liveDone).Error; err != nil {
		return nil, fmt.Errorf("counting done documents of class %s: %w", class.ID, err)
	}

	if class.DocumentCount == int(liveDocs) && class.DoneCount == int(liveDone) {
		return nil, nil
	}

	drift := &Drift{
		ClassID:    class.ID,
		Name:       class.Name,
		StoredDocs: class.DocumentCount,
		LiveDocs:   int(liveDocs),
		StoredDone: class.DoneCount,
		LiveDone:   int(liveDone),
	}

	if repair {
		err := tx.Model(&entities.Class{}).Where("id = ?", class.ID).Updates(map[string]any{
			"document_count": int(liveDocs),
			"done_count":     int(liveDone),
		}).Error
		if err != nil {
			return nil, fmt.Errorf("repairing counters of class %s: %w", class.ID, err)
		}
	}

	return drift, nil
}
