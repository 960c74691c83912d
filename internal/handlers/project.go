package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"project-mapping/internal/models"
	"project-mapping/internal/repository"
)

type ProjectHandler struct {
	projects *repository.ProjectRepository
}

func NewProjectHandler(projects *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type ProjectRequest struct {
	ProjectName  string `json:"project_name"`
	CustomerName string `json:"customer_name"`
	Category     string `json:"category"`
	PIC          string `json:"pic"`
	Status       string `json:"status"`
	DateStart    string `json:"date_start"`
	DateEnd      string `json:"date_end"`
	NoPO         string `json:"no_po"`
	NomorBA      string `json:"nomor_ba"`
	Location     string `json:"location"`
}

type ProjectResponse struct {
	ID           uint   `json:"id"`
	ProjectName  string `json:"project_name"`
	CustomerName string `json:"customer_name"`
	Category     string `json:"category"`
	PIC          string `json:"pic"`
	Status       string `json:"status"`
	DateStart    string `json:"date_start"`
	DateEnd      string `json:"date_end"`
	NoPO         string `json:"no_po"`
	NomorBA      string `json:"nomor_ba"`
	Location     string `json:"location"`
	Progress     int    `json:"progress"`
}

// projectFromRequest turns a request body into a model. An unknown
// status string is reported by the second return; an empty status is
// passed through so the repository's required-field check names it.
func projectFromRequest(body *ProjectRequest) (*models.Project, bool) {
	var status models.ProjectStatus
	if body.Status != "" {
		parsed, ok := models.ParseStatus(body.Status)
		if !ok {
			return nil, false
		}
		status = parsed
	}

	return &models.Project{
		ProjectName:  body.ProjectName,
		CustomerName: body.CustomerName,
		Category:     body.Category,
		PIC:          body.PIC,
		Status:       status,
		DateStart:    body.DateStart,
		DateEnd:      body.DateEnd,
		NoPO:         body.NoPO,
		NomorBA:      body.NomorBA,
		Location:     body.Location,
	}, true
}

func (h *ProjectHandler) response(p *models.Project) ProjectResponse {
	percent, _ := h.projects.Progress(p.Status)
	return ProjectResponse{
		ID:           p.ID,
		ProjectName:  p.ProjectName,
		CustomerName: p.CustomerName,
		Category:     p.Category,
		PIC:          p.PIC,
		Status:       string(p.Status),
		DateStart:    p.DateStart,
		DateEnd:      p.DateEnd,
		NoPO:         p.NoPO,
		NomorBA:      p.NomorBA,
		Location:     p.Location,
		Progress:     percent,
	}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List()
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		response = append(response, h.response(&projects[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(project))
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var body ProjectRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := projectFromRequest(&body)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + body.Status})
		return
	}

	if err := h.projects.Create(project); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.response(project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var body ProjectRequest
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := projectFromRequest(&body)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + body.Status})
		return
	}

	if err := h.projects.Update(id, project); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// Progress reports one project's status and derived percentage.
func (h *ProjectHandler) Progress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}

	percent, err := h.projects.Progress(project.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":       project.ID,
		"status":   project.Status,
		"progress": percent,
	})
}

// ProgressSummary returns the per-project series the dashboard's bar
// chart is drawn from.
func (h *ProjectHandler) ProgressSummary(c *gin.Context) {
	projects, err := h.projects.List()
	if err != nil {
		writeError(c, err)
		return
	}

	type entry struct {
		ID          uint   `json:"id"`
		ProjectName string `json:"project_name"`
		Status      string `json:"status"`
		Progress    int    `json:"progress"`
	}

	series := make([]entry, 0, len(projects))
	for _, project := range projects {
		percent, _ := h.projects.Progress(project.Status)
		series = append(series, entry{
			ID:          project.ID,
			ProjectName: project.ProjectName,
			Status:      string(project.Status),
			Progress:    percent,
		})
	}
	c.JSON(http.StatusOK, series)
}
