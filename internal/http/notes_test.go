package http

import (
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydesk/studydesk/internal/database"
	"github.com/studydesk/studydesk/internal/database/classes"
	"github.com/studydesk/studydesk/internal/services"
)

func setupNotesTest(t *testing.T) (*classes.Repository, *services.NotesAutosaver, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_notes_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := classes.NewRepository(db)
	autosaver := services.NewNotesAutosaver(repo, time.Hour)
	controller := NewNotesController(autosaver, repo)

	router := gin.New()
	router.PUT("/api/classes/:id/notes", controller.ScheduleNotes)
	router.POST("/api/classes/:id/notes/flush", controller.FlushNotes)

	cleanup := func() {
		autosaver.Cancel()
		db.Close()
		os.Remove(dbPath)
	}
	return repo, autosaver, router, cleanup
}

func TestNotesController_ScheduleAndFlush(t *testing.T) {
	repo, _, router, cleanup := setupNotesTest(t)
	defer cleanup()

	class, err := repo.Create("Algebra", false)
	require.NoError(t, err)

	w := jsonRequest(t, router, "PUT", "/api/classes/"+class.ID+"/notes", gin.H{"notes": "chapter 3"})
	assert.Equal(t, http.StatusAccepted, w.Code)

	// Nothing is persisted until the quiet period elapses or a flush runs.
	stored, err := repo.GetByID(class.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Notes)

	w = jsonRequest(t, router, "POST", "/api/classes/"+class.ID+"/notes/flush", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	stored, err = repo.GetByID(class.ID)
	require.NoError(t, err)
	assert.Equal(t, "chapter 3", stored.Notes)
}

func TestNotesController_LatestScheduledWriteWins(t *testing.T) {
	repo, _, router, cleanup := setupNotesTest(t)
	defer cleanup()

	class, err := repo.Create("Algebra", false)
	require.NoError(t, err)

	jsonRequest(t, router, "PUT", "/api/classes/"+class.ID+"/notes", gin.H{"notes": "v1"})
	jsonRequest(t, router, "PUT", "/api/classes/"+class.ID+"/notes", gin.H{"notes": "v2"})
	jsonRequest(t, router, "POST", "/api/classes/"+class.ID+"/notes/flush", nil)

	stored, err := repo.GetByID(class.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", stored.Notes)
}

func TestNotesController_UnknownClass(t *testing.T) {
	_, _, router, cleanup := setupNotesTest(t)
	defer cleanup()

	w := jsonRequest(t, router, "PUT", "/api/classes/no-such-id/notes", gin.H{"notes": "x"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotesController_FlushWithNothingPending(t *testing.T) {
	repo, _, router, cleanup := setupNotesTest(t)
	defer cleanup()

	class, err := repo.Create("Algebra", false)
	require.NoError(t, err)

	w := jsonRequest(t, router, "POST", "/api/classes/"+class.ID+"/notes/flush", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
