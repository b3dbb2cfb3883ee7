package models

// TaskMember grants a non-privileged user visibility into a task without
// being its curator or author. The task owns its member rows: deleting a
// task deletes them first.
type TaskMember struct {
	ID     int64 `gorm:"primarykey" json:"id"`
	TaskID int64 `gorm:"not null;uniqueIndex:idx_task_members_task_user" json:"task_id"`
	UserID int64 `gorm:"not null;uniqueIndex:idx_task_members_task_user" json:"user_id"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
