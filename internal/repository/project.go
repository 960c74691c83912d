package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"project-mapping/internal/models"
)

type ProjectRepository struct {
	db          *gorm.DB
	attachments *AttachmentStore
	progress    models.ProgressTable
}

func NewProjectRepository(db *gorm.DB, attachments *AttachmentStore, progress models.ProgressTable) *ProjectRepository {
	return &ProjectRepository{
		db:          db,
		attachments: attachments,
		progress:    progress,
	}
}

// List returns every project in insertion order.
func (r *ProjectRepository) List() ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.Order("id asc").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Get(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return &project, nil
}

// Create validates required fields, inserts the row and assigns p.ID.
func (r *ProjectRepository) Create(p *models.Project) error {
	if err := validateProject(p); err != nil {
		return err
	}
	p.ID = 0
	if err := r.db.Create(p).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Update is a full replace of the row's mutable fields; the id is
// preserved. The existence pre-check is deliberate: gorm reports a
// zero-row UPDATE as success, and that silence has to become NotFound.
func (r *ProjectRepository) Update(id uint, p *models.Project) error {
	if err := validateProject(p); err != nil {
		return err
	}

	var existing models.Project
	if err := r.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("get project %d: %w", id, err)
	}

	p.ID = existing.ID
	if err := r.db.Save(p).Error; err != nil {
		return fmt.Errorf("update project %d: %w", id, err)
	}
	return nil
}

// Delete removes the project row together with every attachment row
// and its backing file. Attachment cleanup runs first so a storage
// failure leaves the project (and its index entries) intact.
func (r *ProjectRepository) Delete(id uint) error {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("get project %d: %w", id, err)
	}

	if err := r.attachments.deleteAllForProject(id); err != nil {
		return err
	}

	if err := r.db.Delete(&models.Project{}, id).Error; err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	return nil
}

// Progress resolves a status to its completion percentage.
func (r *ProjectRepository) Progress(status models.ProjectStatus) (int, error) {
	percent, ok := r.progress.Percent(status)
	if !ok {
		return 0, fmt.Errorf("unknown status %q", status)
	}
	return percent, nil
}

func validateProject(p *models.Project) error {
	required := []struct {
		field string
		value string
	}{
		{"project_name", p.ProjectName},
		{"customer_name", p.CustomerName},
		{"category", p.Category},
		{"pic", p.PIC},
		{"status", string(p.Status)},
		{"date_start", p.DateStart},
		{"date_end", p.DateEnd},
	}
	for _, req := range required {
		if req.value == "" {
			return fmt.Errorf("%w: %s", ErrValidation, req.field)
		}
	}
	return nil
}
