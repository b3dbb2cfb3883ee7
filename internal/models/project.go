package models

type Project struct {
	ID          int64  `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}
