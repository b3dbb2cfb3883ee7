package models

// ProjectMember grants a non-privileged user visibility into a project.
type ProjectMember struct {
	ID        int64 `gorm:"primarykey" json:"id"`
	ProjectID int64 `gorm:"not null;uniqueIndex:idx_project_members_project_user" json:"project_id"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_project_members_project_user" json:"user_id"`
	IsActive  bool  `gorm:"column:is_active" json:"is_active"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}
