package models

import "time"

type Task struct {
	ID         int64      `gorm:"primarykey" json:"id"`
	Name       string     `gorm:"not null" json:"name"`
	Message    string     `gorm:"type:text" json:"message"`
	Priority   *int       `json:"priority"`
	StartDate  *time.Time `json:"start_date"`
	FinishDate *time.Time `json:"finish_date"`
	Deleted    bool       `gorm:"column:is_deleted" json:"-"`
	// Version backs optimistic-concurrency detection; it is advanced by the
	// repository, never taken from client input.
	Version int64 `gorm:"not null;default:0" json:"version"`

	StatusID  *int64 `json:"status_id,omitempty"`
	StageID   *int64 `json:"stage_id,omitempty"`
	ProjectID int64  `gorm:"not null" json:"project_id"`
	CuratorID int64  `gorm:"not null" json:"curator_id"`
	AuthorID  int64  `gorm:"not null" json:"author_id"`

	// Relations
	Status  *Status      `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Stage   *Stage       `gorm:"foreignKey:StageID" json:"stage,omitempty"`
	Project Project      `gorm:"foreignKey:ProjectID" json:"-"`
	Curator User         `gorm:"foreignKey:CuratorID" json:"curator,omitempty"`
	Author  User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Members []TaskMember `gorm:"foreignKey:TaskID" json:"members,omitempty"`
}
