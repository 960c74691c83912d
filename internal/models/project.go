package models

type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "Not Started"
	StatusInProgress ProjectStatus = "In Progress"
	StatusWaitingBA  ProjectStatus = "Waiting BA"
	StatusNotReport  ProjectStatus = "Not Report"
	StatusOnHold     ProjectStatus = "On Hold"
	StatusCompleted  ProjectStatus = "Completed"
)

// Observed category values; the column stays free text.
const (
	CategoryService = "SERVICE"
	CategoryProject = "PROJECT"
)

// AllStatuses lists the canonical status set in lifecycle order.
func AllStatuses() []ProjectStatus {
	return []ProjectStatus{
		StatusNotStarted,
		StatusOnHold,
		StatusInProgress,
		StatusWaitingBA,
		StatusNotReport,
		StatusCompleted,
	}
}

// ParseStatus maps a raw string onto the canonical status set.
// "On Going" is accepted as a legacy alias for "In Progress".
func ParseStatus(s string) (ProjectStatus, bool) {
	if s == "On Going" {
		return StatusInProgress, true
	}
	for _, status := range AllStatuses() {
		if s == string(status) {
			return status, true
		}
	}
	return "", false
}

type Project struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProjectName  string        `gorm:"size:255;not null" json:"project_name"`
	CustomerName string        `gorm:"size:255;not null" json:"customer_name"`
	Category     string        `gorm:"size:100;not null" json:"category"`
	PIC          string        `gorm:"size:255;not null" json:"pic"`
	Status       ProjectStatus `gorm:"type:varchar(50);not null" json:"status"`

	// ISO calendar dates (YYYY-MM-DD). Start may exceed end; the
	// range was never validated upstream and is not validated here.
	DateStart string `gorm:"size:10;not null" json:"date_start"`
	DateEnd   string `gorm:"size:10;not null" json:"date_end"`

	NoPO     string `gorm:"size:100" json:"no_po"`
	NomorBA  string `gorm:"size:100" json:"nomor_ba"`
	Location string `gorm:"size:255" json:"location"`
}
