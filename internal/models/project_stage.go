package models

// ProjectStage links a reusable stage to a project. Only active links count
// as the project's current pipeline.
type ProjectStage struct {
	ID        int64 `gorm:"primarykey" json:"id"`
	ProjectID int64 `gorm:"not null;uniqueIndex:idx_project_stages_project_stage" json:"project_id"`
	StageID   int64 `gorm:"not null;uniqueIndex:idx_project_stages_project_stage" json:"stage_id"`
	IsActive  bool  `gorm:"column:is_active" json:"is_active"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Stage   Stage   `gorm:"foreignKey:StageID" json:"-"`
}
