package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studydesk/studydesk/internal/entities"
	"github.com/studydesk/studydesk/internal/services"
)

// ClassesController exposes class (study folder) management endpoints.
type ClassesController struct {
	store services.ClassStore
}

// NewClassesController creates a new classes controller.
func NewClassesController(store services.ClassStore) *ClassesController {
	return &ClassesController{store: store}
}

type createClassRequest struct {
	Name     string `json:"name" binding:"required"`
	IsPinned bool   `json:"is_pinned"`
}

type updateClassRequest struct {
	Name     *string `json:"name"`
	IsPinned *bool   `json:"is_pinned"`
	Notes    *string `json:"notes"`
}

func entitiesPatch(req updateClassRequest) entities.ClassPatch {
	return entities.ClassPatch{
		Name:     req.Name,
		IsPinned: req.IsPinned,
		Notes:    req.Notes,
	}
}

// CreateClass creates a new empty class.
// POST /api/classes
func (cc *ClassesController) CreateClass(c *gin.Context) {
	var req createClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	class, err := cc.store.Create(req.Name, req.IsPinned)
	if err != nil {
		respondStoreError(c, err, "create class")
		return
	}

	respondCreated(c, class)
}

// ListClasses returns all classes.
// GET /api/classes
func (cc *ClassesController) ListClasses(c *gin.Context) {
	all, err := cc.store.GetAll()
	if err != nil {
		respondStoreError(c, err, "list classes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"classes": all, "total": len(all)})
}

// ListPinned returns all pinned classes.
// GET /api/classes/pinned
func (cc *ClassesController) ListPinned(c *gin.Context) {
	pinned, err := cc.store.GetPinned()
	if err != nil {
		respondStoreError(c, err, "list pinned classes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"classes": pinned, "total": len(pinned)})
}

// GetClass returns a single class.
// GET /api/classes/:id
func (cc *ClassesController) GetClass(c *gin.Context) {
	class, err := cc.store.GetByID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "get class")
		return
	}
	if class == nil {
		respondNotFound(c, "class")
		return
	}

	c.JSON(http.StatusOK, class)
}

// UpdateClass merges the given fields into a class. Absent fields are left
// untouched.
// PATCH /api/classes/:id
func (cc *ClassesController) UpdateClass(c *gin.Context) {
	var req updateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid update payload")
		return
	}

	id := c.Param("id")
	err := cc.store.Update(id, entitiesPatch(req))
	if err != nil {
		respondStoreError(c, err, "update class")
		return
	}

	class, err := cc.store.GetByID(id)
	if err != nil || class == nil {
		respondSuccess(c, "class updated")
		return
	}
	c.JSON(http.StatusOK, class)
}

// TogglePin flips the pinned state of a class.
// POST /api/classes/:id/pin
func (cc *ClassesController) TogglePin(c *gin.Context) {
	pinned, err := cc.store.TogglePin(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "toggle pin")
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_pinned": pinned})
}

// DeleteClass removes a class and all of its documents.
// DELETE /api/classes/:id
func (cc *ClassesController) DeleteClass(c *gin.Context) {
	if err := cc.store.Delete(c.Param("id")); err != nil {
		respondStoreError(c, err, "delete class")
		return
	}

	respondSuccess(c, "class deleted")
}
