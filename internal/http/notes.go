package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studydesk/studydesk/internal/services"
)

// NotesController exposes the debounced notes editing surface. Edits are
// acknowledged immediately and persisted after the quiet period; closing the
// editor (or shutting down the server) flushes the pending write.
type NotesController struct {
	autosaver *services.NotesAutosaver
	store     services.ClassStore
}

// NewNotesController creates a new notes controller.
func NewNotesController(autosaver *services.NotesAutosaver, store services.ClassStore) *NotesController {
	return &NotesController{autosaver: autosaver, store: store}
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// ScheduleNotes records the latest notes text for a class and schedules the
// debounced write. Each call supersedes the previous pending write.
// PUT /api/classes/:id/notes
func (nc *NotesController) ScheduleNotes(c *gin.Context) {
	id := c.Param("id")

	class, err := nc.store.GetByID(id)
	if err != nil {
		respondStoreError(c, err, "schedule notes")
		return
	}
	if class == nil {
		respondNotFound(c, "class")
		return
	}

	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid notes payload")
		return
	}

	nc.autosaver.Schedule(id, req.Notes)
	c.JSON(http.StatusAccepted, SuccessResponse{Message: "notes save scheduled"})
}

// FlushNotes synchronously persists any pending notes write. The editing
// surface calls this when it closes.
// POST /api/classes/:id/notes/flush
func (nc *NotesController) FlushNotes(c *gin.Context) {
	if err := nc.autosaver.Flush(); err != nil {
		respondStoreError(c, err, "flush notes")
		return
	}
	respondSuccess(c, "notes flushed")
}
