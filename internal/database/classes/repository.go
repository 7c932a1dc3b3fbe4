// Package classes provides database operations for class (study folder)
// management.
//
// # Usage
//
//	repo := classes.NewRepository(db)
//	class, err := repo.Create("Algebra", false)
package classes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studydesk/studydesk/internal/database"
	"github.com/studydesk/studydesk/internal/entities"
)

// Repository handles all class database operations.
type Repository struct {
	db *database.Database
}

// NewRepository creates a new classes repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// Create inserts a new class with zeroed counters and empty notes, returning
// the stored record. The id is generated here and never reused.
func (r *Repository) Create(name string, pinned bool) (*entities.Class, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: class name must not be empty", database.ErrValidation)
	}

	class := &entities.Class{
		ID:            uuid.NewString(),
		Name:          name,
		DateCreated:   entities.NowMillis(),
		IsPinned:      pinned,
		Notes:         "",
		DocumentCount: 0,
		DoneCount:     0,
	}

	err := r.db.Transact(func(tx *gorm.DB) error {
		return tx.Create(class).Error
	})
	if err != nil {
		return nil, err
	}

	return class, nil
}

// GetAll returns all classes, unordered. Sorting and filtering are a concern
// of the layer above.
func (r *Repository) GetAll() ([]entities.Class, error) {
	db, err := r.db.Conn()
	if err != nil {
		return nil, err
	}

	var all []entities.Class
	err = db.Find(&all).Error
	return all, err
}

// GetByID returns the class, or nil without error when no class has that id.
func (r *Repository) GetByID(id string) (*entities.Class, error) {
	db, err := r.db.Conn()
	if err != nil {
		return nil, err
	}

	var class entities.Class
	err = db.Where("id = ?", id).First(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// GetPinned returns all pinned classes.
func (r *Repository) GetPinned() ([]entities.Class, error) {
	db, err := r.db.Conn()
	if err != nil {
		return nil, err
	}

	var pinned []entities.Class
	err = db.Where("is_pinned = ?", true).Find(&pinned).Error
	return pinned, err
}

// Update merges the patch into the stored record with a read-modify-write
// inside one transaction, so a notes-only or name-only patch never clobbers
// other fields. Returns ErrNotFound when no class has that id.
func (r *Repository) Update(id string, patch entities.ClassPatch) error {
	if patch.Empty() {
		return nil
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: class name must not be empty", database.ErrValidation)
	}

	return r.db.Transact(func(tx *gorm.DB) error {
		var class entities.Class
		err := tx.Where("id = ?", id).First(&class).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("class %s: %w", id, database.ErrNotFound)
		}
		if err != nil {
			return err
		}

		if patch.Name != nil {
			class.Name = *patch.Name
		}
		if patch.IsPinned != nil {
			class.IsPinned = *patch.IsPinned
		}
		if patch.Notes != nil {
			class.Notes = *patch.Notes
		}

		return tx.Save(&class).Error
	})
}

// TogglePin flips the pin state of a class and returns the new state.
func (r *Repository) TogglePin(id string) (bool, error) {
	var pinned bool

	err := r.db.Transact(func(tx *gorm.DB) error {
		var class entities.Class
		err := tx.Where("id = ?", id).First(&class).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("class %s: %w", id, database.ErrNotFound)
		}
		if err != nil {
			return err
		}

		class.IsPinned = !class.IsPinned
		pinned = class.IsPinned
		return tx.Save(&class).Error
	})

	return pinned, err
}

// Delete removes the class and every document referencing it in a single
// transaction spanning both collections. Either the class and all of its
// documents are gone, or the store is left unchanged. Deleting an id that is
// already gone succeeds silently.
func (r *Repository) Delete(id string) error {
	return r.db.Transact(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&entities.Document{}).Error; err != nil {
			return fmt.Errorf("deleting documents of class %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&entities.Class{}).Error; err != nil {
			return fmt.Errorf("deleting class %s: %w", id, err)
		}
		return nil
	})
}
