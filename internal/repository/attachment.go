package repository

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"project-mapping/internal/models"
	"project-mapping/internal/storage"
)

type UploadPolicy string

const (
	// PolicyReplace — a new upload under an existing category deletes
	// the old file and takes over its metadata row.
	PolicyReplace UploadPolicy = "replace"
	// PolicyStrict — a second upload with an already-used file name is
	// rejected.
	PolicyStrict UploadPolicy = "strict"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type AttachmentStore struct {
	db       *gorm.DB
	files    *storage.FileStore
	policy   UploadPolicy
	allowAny bool
}

func NewAttachmentStore(db *gorm.DB, files *storage.FileStore, policy UploadPolicy, allowAny bool) *AttachmentStore {
	return &AttachmentStore{
		db:       db,
		files:    files,
		policy:   policy,
		allowAny: allowAny,
	}
}

// Upload stores the bytes and records the metadata row as one unit: a
// failed write leaves no row, a failed insert removes the just-written
// file. Under the replace policy an upload into an occupied category
// supersedes the previous file; under the strict policy a reused file
// name is rejected.
func (s *AttachmentStore) Upload(projectID uint, fileName string, content []byte, category string) (*models.Attachment, error) {
	fileName = filepath.Base(fileName)
	category = canonicalCategory(category)

	if !s.allowAny {
		ext := strings.ToLower(filepath.Ext(fileName))
		if !allowedExtensions[ext] {
			return nil, &RejectedError{Reason: ReasonUnsupportedType, Detail: fileName}
		}
	}

	if s.policy == PolicyStrict {
		var count int64
		err := s.db.Model(&models.Attachment{}).
			Where("project_id = ? AND file_name = ?", projectID, fileName).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("check duplicate %s: %w", fileName, err)
		}
		if count > 0 {
			return nil, &RejectedError{Reason: ReasonDuplicate, Detail: fileName}
		}
		return s.insert(projectID, fileName, content, category)
	}

	existing, err := s.findByCategory(projectID, category)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return s.insert(projectID, fileName, content, category)
	}
	return s.replace(existing, fileName, content, category)
}

// canonicalCategory maps any spelling of a checklist category onto its
// canonical label ("spk" -> "SPK"); unknown categories keep their
// trimmed spelling.
func canonicalCategory(category string) string {
	slug := storage.CategorySlug(category)
	for _, known := range append(models.RequiredCategories(), models.FileAdditional) {
		if storage.CategorySlug(known) == slug {
			return known
		}
	}
	return strings.TrimSpace(category)
}

// findByCategory resolves the row occupying a category slot. Matching
// runs on the category's directory slug: two labels that share a disk
// path must share a slot, or replacing one would silently clobber the
// other's bytes.
func (s *AttachmentStore) findByCategory(projectID uint, category string) (*models.Attachment, error) {
	slug := storage.CategorySlug(category)
	attachments, err := s.ListForProject(projectID)
	if err != nil {
		return nil, err
	}
	for i := range attachments {
		if storage.CategorySlug(attachments[i].FileCategory) == slug {
			return &attachments[i], nil
		}
	}
	return nil, nil
}

func (s *AttachmentStore) insert(projectID uint, fileName string, content []byte, category string) (*models.Attachment, error) {
	rel, err := s.files.Save(projectID, category, fileName, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	attachment := models.Attachment{
		ProjectID:    projectID,
		FileName:     fileName,
		FilePath:     rel,
		FileCategory: category,
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		_ = s.files.Remove(rel)
		return nil, fmt.Errorf("record attachment %s: %w", fileName, err)
	}
	return &attachment, nil
}

func (s *AttachmentStore) replace(existing *models.Attachment, fileName string, content []byte, category string) (*models.Attachment, error) {
	oldPath := existing.FilePath
	rel, err := s.files.Save(existing.ProjectID, category, fileName, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	updated := *existing
	updated.FileName = fileName
	updated.FilePath = rel
	updated.FileCategory = category
	updated.UploadDate = time.Now()
	if err := s.db.Save(&updated).Error; err != nil {
		// The row still points at the old file; the new bytes must not
		// survive as an orphan.
		if rel != oldPath {
			_ = s.files.Remove(rel)
		}
		return nil, fmt.Errorf("record attachment %s: %w", fileName, err)
	}

	// The superseded file must not outlive the replacement. Same path
	// means the new bytes already overwrote it.
	if oldPath != rel {
		if err := s.files.Remove(oldPath); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			log.Printf("attachment %d: superseded file %s not removed: %v", updated.ID, oldPath, err)
		}
	}
	return &updated, nil
}

// ListForProject returns the project's attachments in upload order.
// A project without attachments yields an empty slice, not an error.
func (s *AttachmentStore) ListForProject(projectID uint) ([]models.Attachment, error) {
	attachments := []models.Attachment{}
	err := s.db.Where("project_id = ?", projectID).
		Order("id asc").
		Find(&attachments).Error
	if err != nil {
		return nil, fmt.Errorf("list attachments for project %d: %w", projectID, err)
	}
	return attachments, nil
}

// Get returns a single attachment row.
func (s *AttachmentStore) Get(id uint) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := s.db.First(&attachment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("attachment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get attachment %d: %w", id, err)
	}
	return &attachment, nil
}

// Open returns an attachment together with a reader over its stored
// bytes. The caller closes the reader.
func (s *AttachmentStore) Open(id uint) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.files.Open(attachment.FilePath)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil, fmt.Errorf("attachment file %s: %w", attachment.FilePath, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("%w: open %s: %v", ErrStorage, attachment.FilePath, err)
	}
	return attachment, rc, nil
}

// Delete removes the metadata row and the backing file. A file that is
// already gone is a warning, not a failure; any other removal error
// aborts before the row is touched.
func (s *AttachmentStore) Delete(id uint) error {
	attachment, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.files.Remove(attachment.FilePath); err != nil {
		if !errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("%w: remove %s: %v", ErrStorage, attachment.FilePath, err)
		}
		log.Printf("attachment %d: file %s already missing", id, attachment.FilePath)
	}

	if err := s.db.Delete(&models.Attachment{}, id).Error; err != nil {
		return fmt.Errorf("delete attachment %d: %w", id, err)
	}
	return nil
}

// ExportZip writes a zip archive of every attachment whose backing file
// is still present, entries named by original file name. Missing files
// are skipped; zero attachments still produce a valid empty archive.
// Returns the number of entries written.
func (s *AttachmentStore) ExportZip(projectID uint, w io.Writer) (int, error) {
	attachments, err := s.ListForProject(projectID)
	if err != nil {
		return 0, err
	}

	zw := zip.NewWriter(w)
	count := 0
	for _, attachment := range attachments {
		if !s.files.Exists(attachment.FilePath) {
			log.Printf("export project %d: skipping missing file %s", projectID, attachment.FilePath)
			continue
		}
		rc, err := s.files.Open(attachment.FilePath)
		if err != nil {
			zw.Close()
			return count, fmt.Errorf("%w: open %s: %v", ErrStorage, attachment.FilePath, err)
		}
		entry, err := zw.Create(attachment.FileName)
		if err != nil {
			rc.Close()
			zw.Close()
			return count, fmt.Errorf("archive entry %s: %w", attachment.FileName, err)
		}
		if _, err := io.Copy(entry, rc); err != nil {
			rc.Close()
			zw.Close()
			return count, fmt.Errorf("archive %s: %w", attachment.FileName, err)
		}
		rc.Close()
		count++
	}

	if err := zw.Close(); err != nil {
		return count, fmt.Errorf("finish archive for project %d: %w", projectID, err)
	}
	return count, nil
}

// deleteAllForProject is the cascade half of project deletion: every
// backing file, every metadata row, then the project's directory.
// Missing files are tolerated; present files must go.
func (s *AttachmentStore) deleteAllForProject(projectID uint) error {
	attachments, err := s.ListForProject(projectID)
	if err != nil {
		return err
	}

	for _, attachment := range attachments {
		if err := s.files.Remove(attachment.FilePath); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("%w: remove %s: %v", ErrStorage, attachment.FilePath, err)
		}
	}

	err = s.db.Where("project_id = ?", projectID).
		Delete(&models.Attachment{}).Error
	if err != nil {
		return fmt.Errorf("delete attachments for project %d: %w", projectID, err)
	}

	if err := s.files.RemoveProject(projectID); err != nil {
		return fmt.Errorf("%w: remove project %d directory: %v", ErrStorage, projectID, err)
	}
	return nil
}
