package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydesk/studydesk/internal/database"
	"github.com/studydesk/studydesk/internal/database/classes"
	"github.com/studydesk/studydesk/internal/entities"
)

func setupClassesTest(t *testing.T) (*classes.Repository, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_classes_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := classes.NewRepository(db)
	controller := NewClassesController(repo)

	router := gin.New()
	router.POST("/api/classes", controller.CreateClass)
	router.GET("/api/classes", controller.ListClasses)
	router.GET("/api/classes/pinned", controller.ListPinned)
	router.GET("/api/classes/:id", controller.GetClass)
	router.PATCH("/api/classes/:id", controller.UpdateClass)
	router.DELETE("/api/classes/:id", controller.DeleteClass)
	router.POST("/api/classes/:id/pin", controller.TogglePin)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return repo, router, cleanup
}

func jsonRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestClassesController_CreateClass(t *testing.T) {
	t.Run("creates a class", func(t *testing.T) {
		_, router, cleanup := setupClassesTest(t)
		defer cleanup()

		w := jsonRequest(t, router, "POST", "/api/classes", gin.H{"name": "Algebra"})

		assert.Equal(t, http.StatusCreated, w.Code)

		var class entities.Class
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &class))
		assert.NotEmpty(t, class.ID)
		assert.Equal(t, "Algebra", class.Name)
		assert.Zero(t, class.DocumentCount)
	})

	t.Run("returns 400 when name is missing", func(t *testing.T) {
		_, router, cleanup := setupClassesTest(t)
		defer cleanup()

		w := jsonRequest(t, router, "POST", "/api/classes", gin.H{"is_pinned": true})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name is required")
	})

	t.Run("returns 400 for blank name", func(t *testing.T) {
		_, router, cleanup := setupClassesTest(t)
		defer cleanup()

		w := jsonRequest(t, router, "POST", "/api/classes", gin.H{"name": "   "})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestClassesController_ListClasses(t *testing.T) {
	t.Run("returns empty list", func(t *testing.T) {
		_, router, cleanup := setupClassesTest(t)
		defer cleanup()

		w := jsonRequest(t, router, "GET", "/api/classes", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(0), response["total"])
	})

	t.Run("returns all classes", func(t *testing.T) {
		repo, router, cleanup := setupClassesTest(t)
		defer cleanup()

		_, err := repo.Create("Algebra", false)
		require.NoError(t, err)
		_, err = repo.Create("Biology", true)
		require.NoError(t, err)

		w := jsonRequest(t, router, "GET", "/api/classes", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(2), response["total"])
	})
}

func TestClassesController_ListPinned(t *testing.T) {
	repo, router, cleanup := setupClassesTest(t)
	defer cleanup()

	_, err := repo.Create("Algebra", false)
	require.NoError(t, err)
	pinned, err := repo.Create("Biology", true)
	require.NoError(t, err)

	w := jsonRequest(t, router, "GET", "/api/classes/pinned", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Classes []entities.Class `json:"classes"`
		Total   int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 1, response.Total)
	assert.Equal(t, pinned.ID, response.Classes[0].ID)
}

func TestClassesController_GetClass(t *testing.T) {
	t.Run("returns a class", func(t *testing.T) {
		repo, router, cleanup := setupClassesTest(t)
		defer cleanup()

		created, err := repo.Create("Algebra", false)
		require.NoError(t, err)

		w := jsonRequest(t, router, "GET", "/api/classes/"+created.ID, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var class entities.Class
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &class))
		assert.Equal(t, created.ID, class.ID)
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		_, router, cleanup := setupClassesTest(t)
		defer cleanup()

		w := jsonRequest(t, router, "GET", "/api/classes/no-such-id", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestClassesController_UpdateClass(t *testing.T) {
	t.Run("merges a partial patch", func(t *testing.T) {
		repo, router, cleanup := setupClassesTest(t)
		defer cleanup()

		created, err := repo.Create("Algebra", true)
		require.NoError(t, err)

		w := jsonRequest(t, router, "PATCH", "/api/classes/"+created.ID, gin.H{"notes": "chapter 3"})

		assert.Equal(t, http.StatusOK, w.Code)

		var class entities.Class
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &class))
		assert.Equal(t, "chapter 3", class.Notes)
		assert.Equal(t, "Algebra", class.Name)
		assert.True(t, class.IsPinned)
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		_, router, cleanup := setupClassesTest(t)
		defer cleanup()

		w := jsonRequest(t, router, "PATCH", "/api/classes/no-such-id", gin.H{"name": "Chemistry"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for empty name", func(t *testing.T) {
		repo, router, cleanup := setupClassesTest(t)
		defer cleanup()

		created, err := repo.Create("Algebra", false)
		require.NoError(t, err)

		w := jsonRequest(t, router, "PATCH", "/api/classes/"+created.ID, gin.H{"name": ""})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestClassesController_TogglePin(t *testing.T) {
	repo, router, cleanup := setupClassesTest(t)
	defer cleanup()

	created, err := repo.Create("Algebra", false)
	require.NoError(t, err)

	w := jsonRequest(t, router, "POST", "/api/classes/"+created.ID+"/pin", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["is_pinned"])
}

func TestClassesController_DeleteClass(t *testing.T) {
	t.Run("deletes a class", func(t *testing.T) {
		repo, router, cleanup := setupClassesTest(t)
		defer cleanup()

		created, err := repo.Create("Algebra", false)
		require.NoError(t, err)

		w := jsonRequest(t, router, "DELETE", "/api/classes/"+created.ID, nil)

		assert.Equal(t, http.StatusOK, w.Code)

		gone, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("deleting an unknown id succeeds", func(t *testing.T) {
		_, router, cleanup := setupClassesTest(t)
		defer cleanup()

		w := jsonRequest(t, router, "DELETE", "/api/classes/no-such-id", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
