package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"project-mapping/internal/models"
	"project-mapping/internal/repository"
)

type AttachmentHandler struct {
	attachments *repository.AttachmentStore
	projects    *repository.ProjectRepository
}

func NewAttachmentHandler(attachments *repository.AttachmentStore, projects *repository.ProjectRepository) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments, projects: projects}
}

// Upload accepts a multipart form with a "file" part and an optional
// "category" field (defaults to the free-form Additional bucket).
func (h *AttachmentHandler) Upload(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.projects.Get(id); err != nil {
		writeError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	category := c.PostForm("category")
	if category == "" {
		category = models.FileAdditional
	}

	attachment, err := h.attachments.Upload(id, fileHeader.Filename, content, category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

func (h *AttachmentHandler) List(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	attachments, err := h.attachments.ListForProject(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, attachments)
}

// Checklist reports which of the required document categories already
// have an upload for a project.
func (h *AttachmentHandler) Checklist(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.projects.Get(id); err != nil {
		writeError(c, err)
		return
	}

	attachments, err := h.attachments.ListForProject(id)
	if err != nil {
		writeError(c, err)
		return
	}

	uploaded := make(map[string]bool, len(attachments))
	for _, attachment := range attachments {
		uploaded[attachment.FileCategory] = true
	}

	type item struct {
		Category string `json:"category"`
		Uploaded bool   `json:"uploaded"`
	}
	checklist := make([]item, 0, len(models.RequiredCategories()))
	for _, category := range models.RequiredCategories() {
		checklist = append(checklist, item{Category: category, Uploaded: uploaded[category]})
	}
	c.JSON(http.StatusOK, checklist)
}

// Download streams one attachment's stored bytes under its original
// file name.
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	attachment, rc, err := h.attachments.Open(id)
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.attachments.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}

// Export streams a zip of every attachment still present on storage.
func (h *AttachmentHandler) Export(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.projects.Get(id); err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("project_%d_files.zip", id)))
	c.Header("Content-Type", "application/zip")
	c.Status(http.StatusOK)

	if _, err := h.attachments.ExportZip(id, c.Writer); err != nil {
		// Headers are out; all we can do is cut the stream short.
		c.Abort()
		return
	}
}
