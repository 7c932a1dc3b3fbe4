package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studydesk/studydesk/internal/entities"
	"github.com/studydesk/studydesk/internal/services"
	"github.com/studydesk/studydesk/internal/utils"
)

// maxUploadBytes caps a single document upload at 64 MiB.
const maxUploadBytes = 64 << 20

// DocumentsController exposes document upload, retrieval, status and
// reordering endpoints.
type DocumentsController struct {
	store services.DocumentStore
}

// NewDocumentsController creates a new documents controller.
func NewDocumentsController(store services.DocumentStore) *DocumentsController {
	return &DocumentsController{store: store}
}

// documentMeta is the wire representation of a document without its payload.
type documentMeta struct {
	ID           uint                    `json:"id"`
	Name         string                  `json:"name"`
	Size         int64                   `json:"size"`
	LastModified int64                   `json:"last_modified"`
	DateAdded    int64                   `json:"date_added"`
	Status       entities.DocumentStatus `json:"status"`
	ClassID      string                  `json:"class_id"`
	OrderIndex   *int                    `json:"order_index,omitempty"`
	HasData      bool                    `json:"has_data"`
}

func toMeta(doc entities.Document) documentMeta {
	return documentMeta{
		ID:           doc.ID,
		Name:         doc.Name,
		Size:         doc.Size,
		LastModified: doc.LastModified,
		DateAdded:    doc.DateAdded,
		Status:       doc.Status,
		ClassID:      doc.ClassID,
		OrderIndex:   doc.OrderIndex,
		HasData:      len(doc.Data) > 0,
	}
}

// UploadDocument stores an uploaded file as a new document of a class.
// POST /api/classes/:id/documents (multipart form, field "file")
func (dc *DocumentsController) UploadDocument(c *gin.Context) {
	classID := c.Param("id")

	file, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file field is required")
		return
	}
	if file.Size > maxUploadBytes {
		respondBadRequest(c, fmt.Sprintf("file exceeds the %d byte upload limit", maxUploadBytes))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondInternalError(c, err, "open upload")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		respondInternalError(c, err, "read upload")
		return
	}

	doc := &entities.Document{
		Name:         utils.SanitizeFilename(file.Filename),
		Size:         file.Size,
		LastModified: lastModifiedParam(c),
		Data:         data,
		Status:       entities.StatusToStudy,
		ClassID:      classID,
	}

	if err := dc.store.Add(doc); err != nil {
		respondStoreError(c, err, "add document")
		return
	}

	respondCreated(c, toMeta(*doc))
}

// lastModifiedParam reads the optional last_modified form field (epoch
// millis, reported by the uploading client for the original file).
func lastModifiedParam(c *gin.Context) int64 {
	var millis int64
	fmt.Sscanf(c.PostForm("last_modified"), "%d", &millis)
	return millis
}

// ListByClass returns all documents of a class in display order, without
// payloads.
// GET /api/classes/:id/documents
func (dc *DocumentsController) ListByClass(c *gin.Context) {
	docs, err := dc.store.GetByClass(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "list documents")
		return
	}

	metas := make([]documentMeta, len(docs))
	for i, doc := range docs {
		metas[i] = toMeta(doc)
	}
	c.JSON(http.StatusOK, gin.H{"documents": metas, "total": len(metas)})
}

// GetDocument returns a single document's metadata.
// GET /api/documents/:id
func (dc *DocumentsController) GetDocument(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := dc.store.GetByID(id)
	if err != nil {
		respondStoreError(c, err, "get document")
		return
	}
	if doc == nil {
		respondNotFound(c, "document")
		return
	}

	c.JSON(http.StatusOK, toMeta(*doc))
}

// DownloadDocument streams the stored payload.
// GET /api/documents/:id/download
func (dc *DocumentsController) DownloadDocument(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := dc.store.GetByID(id)
	if err != nil {
		respondStoreError(c, err, "download document")
		return
	}
	if doc == nil {
		respondNotFound(c, "document")
		return
	}
	if len(doc.Data) == 0 {
		respondNotFound(c, "document payload")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	c.Data(http.StatusOK, "application/octet-stream", doc.Data)
}

type setStatusRequest struct {
	Status entities.DocumentStatus `json:"status" binding:"required"`
}

// SetStatus transitions a document between to-study and done.
// PATCH /api/documents/:id/status
func (dc *DocumentsController) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}

	if err := dc.store.SetStatus(id, req.Status); err != nil {
		respondStoreError(c, err, "set document status")
		return
	}

	respondSuccess(c, "status updated")
}

// DeleteDocument removes a document.
// DELETE /api/documents/:id
func (dc *DocumentsController) DeleteDocument(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := dc.store.Delete(id); err != nil {
		respondStoreError(c, err, "delete document")
		return
	}

	respondSuccess(c, "document deleted")
}

type reorderRequest struct {
	// DocumentIDs is the touched partition in its requested order. The
	// untouched remainder of the class keeps its relative order; the merge
	// into a full permutation happens server-side.
	DocumentIDs []uint `json:"document_ids" binding:"required"`
}

// ReorderDocuments applies a manual ordering of one status partition to the
// whole class.
// POST /api/classes/:id/documents/reorder
func (dc *DocumentsController) ReorderDocuments(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "document_ids is required")
		return
	}

	classID := c.Param("id")
	if err := services.ReorderPartition(dc.store, classID, req.DocumentIDs); err != nil {
		respondStoreError(c, err, "reorder documents")
		return
	}

	docs, err := dc.store.GetByClass(classID)
	if err != nil {
		respondSuccess(c, "documents reordered")
		return
	}
	metas := make([]documentMeta, len(docs))
	for i, doc := range docs {
		metas[i] = toMeta(doc)
	}
	c.JSON(http.StatusOK, gin.H{"documents": metas, "total": len(metas)})
}
