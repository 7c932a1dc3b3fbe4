package http

import (
	"github.com/gin-gonic/gin"

	"github.com/studydesk/studydesk/internal/database"
	"github.com/studydesk/studydesk/internal/services"
	"github.com/studydesk/studydesk/internal/tasks"
)

// RouterConfig receives all dependencies of the HTTP layer, improving
// testability and reducing parameter count.
type RouterConfig struct {
	Database   *database.Database
	Classes    services.ClassStore
	Documents  services.DocumentStore
	Autosaver  *services.NotesAutosaver
	TaskClient *tasks.Client
	Version    string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	classes := NewClassesController(cfg.Classes)
	documents := NewDocumentsController(cfg.Documents)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Class endpoints
	router.POST("/api/classes", classes.CreateClass)
	router.GET("/api/classes", classes.ListClasses)
	router.GET("/api/classes/pinned", classes.ListPinned)
	router.GET("/api/classes/:id", classes.GetClass)
	router.PATCH("/api/classes/:id", classes.UpdateClass)
	router.DELETE("/api/classes/:id", classes.DeleteClass)
	router.POST("/api/classes/:id/pin", classes.TogglePin)

	// Document endpoints
	router.POST("/api/classes/:id/documents", documents.UploadDocument)
	router.GET("/api/classes/:id/documents", documents.ListByClass)
	router.POST("/api/classes/:id/documents/reorder", documents.ReorderDocuments)
	router.GET("/api/documents/:id", documents.GetDocument)
	router.GET("/api/documents/:id/download", documents.DownloadDocument)
	router.PATCH("/api/documents/:id/status", documents.SetStatus)
	router.DELETE("/api/documents/:id", documents.DeleteDocument)

	// Notes endpoints (debounced editing surface)
	if cfg.Autosaver != nil {
		notes := NewNotesController(cfg.Autosaver, cfg.Classes)
		router.PUT("/api/classes/:id/notes", notes.ScheduleNotes)
		router.POST("/api/classes/:id/notes/flush", notes.FlushNotes)
	}

	// Maintenance endpoints
	if cfg.TaskClient != nil {
		admin := NewAdminController(cfg.TaskClient)
		router.POST("/api/admin/integrity/run", admin.RunIntegrityAudit)
		router.GET("/api/admin/tasks/:id", admin.GetTaskStatus)
	}

	return router
}
