package entities

import "time"

type DocumentStatus string

const (
	StatusToStudy DocumentStatus = "to-study"
	StatusDone    DocumentStatus = "done"
)

// Valid reports whether s is one of the known document statuses.
func (s DocumentStatus) Valid() bool {
	return s == StatusToStudy || s == StatusDone
}

// Class is a study folder containing zero or more documents.
//
// DocumentCount and DoneCount are denormalized aggregates: they must always
// equal the live number of documents referencing the class and the subset of
// those with status "done". They are maintained by the counters package inside
// the same transaction as the document write that changes them.
type Class struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	Name          string `gorm:"index;size:512" json:"name"`
	DateCreated   int64  `gorm:"index" json:"date_created"` // epoch millis
	IsPinned      bool   `gorm:"index;default:false" json:"is_pinned"`
	Notes         string `gorm:"type:text" json:"notes"`
	DocumentCount int    `gorm:"default:0" json:"document_count"`
	DoneCount     int    `gorm:"default:0" json:"done_count"`
}

// Document is an uploaded file record belonging to exactly one class for its
// whole lifetime. Data may be empty; the UI treats a document without payload
// as valid but degraded.
type Document struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:512" json:"name"`
	Size         int64          `json:"size"`
	LastModified int64          `json:"last_modified"` // epoch millis
	DateAdded    int64          `gorm:"index" json:"date_added"`
	Data         []byte         `gorm:"type:blob" json:"-"`
	Status       DocumentStatus `gorm:"index;size:16;default:'to-study'" json:"status"`
	ClassID      string         `gorm:"index;size:36" json:"class_id"`

	// OrderIndex positions the document within the ordered sequence of all
	// documents of its class, across both status partitions. NULL for rows
	// created before ordering existed; those sort after ordered rows.
	OrderIndex *int `json:"order_index,omitempty"`
}

// ClassPatch lists the class fields that may be merged into a stored record.
// Nil fields are left untouched, so a notes-only or pin-only update never
// clobbers concurrent edits to other fields.
type ClassPatch struct {
	Name     *string
	IsPinned *bool
	Notes    *string
}

// Empty reports whether the patch carries no fields.
func (p ClassPatch) Empty() bool {
	return p.Name == nil && p.IsPinned == nil && p.Notes == nil
}

// ReorderUpdate assigns a new order index to a single document.
type ReorderUpdate struct {
	ID         uint `json:"id"`
	OrderIndex int  `json:"order_index"`
}

func (Class) TableName() string {
	return "classes"
}

func (Document) TableName() string {
	return "documents"
}

// NowMillis returns the current time as epoch milliseconds, the timestamp
// representation stored on both entities.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
