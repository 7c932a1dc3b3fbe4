package services

import "github.com/studydesk/studydesk/internal/entities"

// ClassStore provides access to class records. Implemented by the classes
// repository.
type ClassStore interface {
	Create(name string, pinned bool) (*entities.Class, error)
	GetAll() ([]entities.Class, error)
	GetByID(id string) (*entities.Class, error)
	GetPinned() ([]entities.Class, error)
	Update(id string, patch entities.ClassPatch) error
	TogglePin(id string) (bool, error)
	Delete(id string) error
}

// DocumentStore provides access to document records. Implemented by the
// documents repository.
type DocumentStore interface {
	Add(doc *entities.Document) error
	GetByID(id uint) (*entities.Document, error)
	GetByClass(classID string) ([]entities.Document, error)
	SetStatus(id uint, status entities.DocumentStatus) error
	Delete(id uint) error
	Reorder(updates []entities.ReorderUpdate) error
}
