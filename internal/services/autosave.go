package services

import (
	"log"
	"sync"
	"time"

	"github.com/studydesk/studydesk/internal/entities"
)

// DefaultQuietPeriod is how long the notes autosaver waits after the last
// edit before persisting.
const DefaultQuietPeriod = 750 * time.Millisecond

// NotesSaver persists the notes of a class.
type NotesSaver interface {
	Update(id string, patch entities.ClassPatch) error
}

// NotesAutosaver debounces notes writes: each edit replaces the pending write
// and restarts the quiet-period timer, so only the latest state of an editing
// burst reaches the store. Closing the editing surface must call Flush (or
// Close) so a still-pending write is persisted synchronously instead of being
// dropped. A superseded write is fully cancelled — its timer is stopped, not
// merely ignored — so it can never race a later flush.
type NotesAutosaver struct {
	store NotesSaver
	quiet time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *pendingNotes
}

type pendingNotes struct {
	classID string
	notes   string
}

// NewNotesAutosaver creates an autosaver writing through store. A
// non-positive quiet period falls back to DefaultQuietPeriod.
func NewNotesAutosaver(store NotesSaver, quiet time.Duration) *NotesAutosaver {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &NotesAutosaver{store: store, quiet: quiet}
}

// Schedule records the latest notes for a class and (re)starts the quiet
// timer. A pending write for the same class is cancelled and replaced; a
// pending write for a different class is flushed first, since supersession
// only applies within one editing surface.
func (a *NotesAutosaver) Schedule(classID, notes string) {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}

	var stale *pendingNotes
	if a.pending != nil && a.pending.classID != classID {
		stale = a.pending
	}
	a.pending = &pendingNotes{classID: classID, notes: notes}
	a.timer = time.AfterFunc(a.quiet, a.fire)
	a.mu.Unlock()

	if stale != nil {
		if err := a.save(stale); err != nil {
			log.Printf("Notes autosave failed for class %s: %v", stale.classID, err)
		}
	}
}

func (a *NotesAutosaver) fire() {
	a.mu.Lock()
	p := a.pending
	a.pending = nil
	a.timer = nil
	a.mu.Unlock()

	if p == nil {
		// A Flush or Cancel won the race with the timer.
		return
	}
	if err := a.save(p); err != nil {
		log.Printf("Notes autosave failed for class %s: %v", p.classID, err)
	}
}

// Cancel discards any pending write without persisting it.
func (a *NotesAutosaver) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pending = nil
}

// Flush synchronously persists the pending write, if any, and cancels its
// timer. Safe to call when nothing is pending.
func (a *NotesAutosaver) Flush() error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	p := a.pending
	a.pending = nil
	a.mu.Unlock()

	if p == nil {
		return nil
	}
	return a.save(p)
}

// Close flushes any pending write. Call on teardown of the editing surface.
func (a *NotesAutosaver) Close() error {
	return a.Flush()
}

func (a *NotesAutosaver) save(p *pendingNotes) error {
	notes := p.notes
	return a.store.Update(p.classID, entities.ClassPatch{Notes: &notes})
}
