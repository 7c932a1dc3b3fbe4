// Package documents provides database operations for uploaded document
// management: CRUD, study-status transitions and manual reordering. Every
// write that affects a class's aggregates runs the counter adjustment inside
// the same transaction.
package documents

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/studydesk/studydesk/internal/database"
	"github.com/studydesk/studydesk/internal/database/counters"
	"github.com/studydesk/studydesk/internal/entities"
)

// Repository handles all document database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new documents repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// Add inserts the document and bumps its class's counters in one transaction
// spanning both collections. The engine assigns the integer id; doc.ID is
// populated on success.
func (r *Repository) Add(doc *entities.Document) error {
	if doc.ClassID == "" {
		return fmt.Errorf("%w: document requires a class id", database.ErrValidation)
	}
	if doc.Status == "" {
		doc.Status = entities.StatusToStudy
	}
	if !doc.Status.Valid() {
		return fmt.Errorf("%w: unknown document status %q", database.ErrValidation, doc.Status)
	}
	if doc.DateAdded == 0 {
		doc.DateAdded = entities.NowMillis()
	}

	return r.db.Transact(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("inserting document %q: %w", doc.Name, err)
		}
		if doc.ID == 0 {
			return fmt.Errorf("%w: engine did not assign an integer key on insert", database.ErrValidation)
		}

		doneDelta := 0
		if doc.Status == entities.StatusDone {
			doneDelta = 1
		}
		return counters.Adjust(tx, doc.ClassID, 1, doneDelta)
	})
}

// GetByID returns the document, or nil without error when no document has
// that id.
func (r *Repository) GetByID(id uint) (*entities.Document, error) {
	db, err := r.db.Conn()
	if err != nil {
		return nil, err
	}

	var doc entities.Document
	err = db.First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByClass returns all documents of a class in display order: documents
// with an order index first, ascending, then legacy rows without one, by
// name for a stable secondary order.
func (r *Repository) GetByClass(classID string) ([]entities.Document, error) {
	db, err := r.db.Conn()
	if err != nil {
		return nil, err
	}

	var docs []entities.Document
	err = db.Where("class_id = ?", classID).
		Order("order_index IS NULL, order_index ASC, name ASC").
		Find(&docs).Error
	return docs, err
}

// SetStatus transitions a document between to-study and done. Setting the
// status it already has is a successful no-op with zero writes. The class's
// done counter moves with the transition, in the same transaction.
func (r *Repository) SetStatus(id uint, status entities.DocumentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown document status %q", database.ErrValidation, status)
	}

	return r.db.Transact(func(tx *gorm.DB) error {
		var doc entities.Document
		err := tx.First(&doc, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("document %d: %w", id, database.ErrNotFound)
		}
		if err != nil {
			return err
		}

		if doc.Status == status {
			return nil
		}

		if err := tx.Model(&entities.Document{}).Where("id = ?", id).
			Update("status", status).Error; err != nil {
			return fmt.Errorf("updating status of document %d: %w", id, err)
		}

		doneDelta := 0
		switch {
		case status == entities.StatusDone:
			doneDelta = 1
		case doc.Status == entities.StatusDone:
			doneDelta = -1
		}
		if doneDelta == 0 {
			return nil
		}
		return counters.Adjust(tx, doc.ClassID, 0, doneDelta)
	})
}

// Delete removes the document and decrements its class's counters in one
// transaction. Deleting an id that is already gone is not an error; it is
// logged and skipped.
func (r *Repository) Delete(id uint) error {
	return r.db.Transact(func(tx *gorm.DB) error {
		var doc entities.Document
		err := tx.First(&doc, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("WARNING: delete skipped, document %d does not exist", id)
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&entities.Document{}, id).Error; err != nil {
			return fmt.Errorf("deleting document %d: %w", id, err)
		}

		doneDelta := 0
		if doc.Status == entities.StatusDone {
			doneDelta = -1
		}
		return counters.Adjust(tx, doc.ClassID, -1, doneDelta)
	})
}

// Reorder applies the given order indexes sequentially inside one
// transaction. An id that has vanished since the caller computed the
// permutation is logged and skipped rather than aborting the rest; an empty
// update set is a no-op.
//
// The caller is responsible for passing a global permutation covering all of
// the class's documents (see services.MergeReorderedPartition): after the
// commit the order_index values of a class form a contiguous 0..n-1 set.
func (r *Repository) Reorder(updates []entities.ReorderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.Transact(func(tx *gorm.DB) error {
		for _, u := range updates {
			var doc entities.Document
			err := tx.First(&doc, u.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Reorder skipped: document %d no longer exists", u.ID)
				continue
			}
			if err != nil {
				return fmt.Errorf("reading document %d for reorder: %w", u.ID, err)
			}

			if err := tx.Model(&entities.Document{}).Where("id = ?", u.ID).
				Update("order_index", u.OrderIndex).Error; err != nil {
				return fmt.Errorf("reordering document %d: %w", u.ID, err)
			}
		}
		return nil
	})
}
