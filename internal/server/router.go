package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"project-mapping/internal/handlers"
	"project-mapping/internal/repository"
)

func NewRouter(projects *repository.ProjectRepository, attachments *repository.AttachmentStore) *gin.Engine {
	r := gin.Default()

	projectHandler := handlers.NewProjectHandler(projects)
	attachmentHandler := handlers.NewAttachmentHandler(attachments, projects)

	api := r.Group("/api")

	// PROJECTS
	api.GET("/projects", projectHandler.List)
	api.POST("/projects", projectHandler.Create)
	api.GET("/projects/:id", projectHandler.Get)
	api.PUT("/projects/:id", projectHandler.Update)
	api.DELETE("/projects/:id", projectHandler.Delete)

	// PROGRESS
	api.GET("/projects/:id/progress", projectHandler.Progress)
	api.GET("/progress", projectHandler.ProgressSummary)

	// FILES
	api.POST("/projects/:id/files", attachmentHandler.Upload)
	api.GET("/projects/:id/files", attachmentHandler.List)
	api.GET("/projects/:id/checklist", attachmentHandler.Checklist)
	api.GET("/projects/:id/export", attachmentHandler.Export)
	api.GET("/files/:id/download", attachmentHandler.Download)
	api.DELETE("/files/:id", attachmentHandler.Delete)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
