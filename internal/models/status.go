package models

// StatusNameDone is the display name of the terminal board column. Tasks in
// this status are excluded from the app-data snapshot by exact match.
const StatusNameDone = "Выполнено"

// Status is an ordered board-column enumeration. Order defines column
// ordering and need not be contiguous.
type Status struct {
	ID    int64  `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Icon  string `gorm:"type:varchar(64)" json:"icon,omitempty"`
	Order int    `gorm:"column:sort_order" json:"order"`
}
