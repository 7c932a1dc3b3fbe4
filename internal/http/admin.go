package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studydesk/studydesk/internal/tasks"
)

// AdminController exposes maintenance endpoints: enqueueing an integrity
// audit and polling its task status.
type AdminController struct {
	taskClient *tasks.Client
}

// NewAdminController creates a new admin controller.
func NewAdminController(taskClient *tasks.Client) *AdminController {
	return &AdminController{taskClient: taskClient}
}

// RunIntegrityAudit enqueues a background audit of the derived class
// counters. Pass repair=true to rewrite drifted counters.
// POST /api/admin/integrity/run
func (ac *AdminController) RunIntegrityAudit(c *gin.Context) {
	repair := c.Query("repair") == "true"

	ids, err := ac.taskClient.Add(tasks.IntegrityAuditTask{Repair: repair}).Save()
	if err != nil {
		respondInternalError(c, err, "enqueue integrity audit")
		return
	}

	c.JSON(http.StatusAccepted, SuccessResponse{
		Message: "integrity audit enqueued",
		Data:    gin.H{"task_id": ids[0], "repair": repair},
	})
}

// GetTaskStatus returns the status of a background task.
// GET /api/admin/tasks/:id
func (ac *AdminController) GetTaskStatus(c *gin.Context) {
	status, err := ac.taskClient.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, status)
}
