package models

// Stage is a reusable pipeline-step label, attached to projects via
// ProjectStage links.
type Stage struct {
	ID          int64  `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}
