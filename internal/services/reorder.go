package services

import (
	"fmt"

	"github.com/studydesk/studydesk/internal/entities"
)

// DocumentOrderStore is the subset of the document repository the reorder
// service needs.
type DocumentOrderStore interface {
	GetByClass(classID string) ([]entities.Document, error)
	Reorder(updates []entities.ReorderUpdate) error
}

// MergeReorderedPartition reconciles a reordered sub-list with the untouched
// remainder of a class's document list.
//
// The UI reorders one status partition at a time, but order indexes span the
// whole class. Given the full list in current display order and the touched
// documents in their requested order, the merged sequence is the touched
// documents followed by every untouched document in its existing relative
// order; positions in that sequence become the new order indexes, a
// contiguous 0..n-1 permutation. Ids in touched that are not part of the
// class are ignored, which also absorbs order-index collisions left behind by
// inserts against a stale in-memory list.
func MergeReorderedPartition(full []entities.Document, touched []uint) []entities.ReorderUpdate {
	known := make(map[uint]bool, len(full))
	for _, doc := range full {
		known[doc.ID] = true
	}

	inTouched := make(map[uint]bool, len(touched))
	merged := make([]uint, 0, len(full))
	for _, id := range touched {
		if !known[id] || inTouched[id] {
			continue
		}
		inTouched[id] = true
		merged = append(merged, id)
	}

	for _, doc := range full {
		if !inTouched[doc.ID] {
			merged = append(merged, doc.ID)
		}
	}

	updates := make([]entities.ReorderUpdate, len(merged))
	for i, id := range merged {
		updates[i] = entities.ReorderUpdate{ID: id, OrderIndex: i}
	}
	return updates
}

// ReorderPartition loads the class's current document order, merges the
// touched partition into a global permutation and persists it.
func ReorderPartition(store DocumentOrderStore, classID string, touched []uint) error {
	full, err := store.GetByClass(classID)
	if err != nil {
		return fmt.Errorf("loading documents of class %s: %w", classID, err)
	}
	if len(full) == 0 {
		return nil
	}

	return store.Reorder(MergeReorderedPartition(full, touched))
}
