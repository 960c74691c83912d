package models

import "time"

// Document categories every project is expected to collect, plus a
// free-form bucket for anything else.
const (
	FileFormRequest      = "Form Request"
	FileFormTimProject   = "Form Tim Project"
	FileFormTimeSchedule = "Form Time Schedule"
	FileSPK              = "SPK"
	FileBAST             = "BAST"
	FileReport           = "Report"
	FileAdditional       = "Additional"
)

// RequiredCategories lists the checklist categories in upload order.
func RequiredCategories() []string {
	return []string{
		FileFormRequest,
		FileFormTimProject,
		FileFormTimeSchedule,
		FileSPK,
		FileBAST,
		FileReport,
	}
}

type Attachment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProjectID uint `gorm:"index;not null" json:"project_id"`

	FileName     string `gorm:"size:255;not null" json:"file_name"`
	FilePath     string `gorm:"size:512;not null" json:"file_path"`
	FileCategory string `gorm:"size:100" json:"file_category"`

	UploadDate time.Time `gorm:"autoCreateTime" json:"upload_date"`
}

func (Attachment) TableName() string {
	return "project_files"
}
