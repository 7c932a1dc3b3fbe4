// Package counters maintains the derived documentCount/doneCount aggregates
// stored on each class.
package counters

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/studydesk/studydesk/internal/entities"
)

// Adjust adds documentDelta and doneDelta to the counters of the given class,
// clamping both at zero, inside the caller's transaction. It never opens a
// transaction of its own: the counter update must commit or abort together
// with the document write that triggered it.
//
// A vanished class is a benign race (its delete and a stray document write
// were both in flight); Adjust logs and leaves the transaction intact rather
// than failing it.
func Adjust(tx *gorm.DB, classID string, documentDelta, doneDelta int) error {
	var class entities.Class
	err := tx.Where("id = ?", classID).First(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Counter adjust skipped: class %s no longer exists", classID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading class %s for counter adjust: %w", classID, err)
	}

	class.DocumentCount = clamp(class.DocumentCount + documentDelta)
	class.DoneCount = clamp(class.DoneCount + doneDelta)

	err = tx.Model(&entities.Class{}).Where("id = ?", classID).Updates(map[string]any{
		"document_count": class.DocumentCount,
		"done_count":     class.DoneCount,
	}).Error
	if err != nil {
		return fmt.Errorf("writing counters for class %s: %w", classID, err)
	}

	return nil
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
