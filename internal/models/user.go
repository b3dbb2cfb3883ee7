package models

// Role is the closed set of board roles. Unknown strings coming from an
// import are preserved as-is and simply carry no privileges.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Privileged reports whether the role is exempt from membership-based
// visibility filtering.
func (r Role) Privileged() bool {
	return r == RoleOwner || r == RoleAdmin
}

type User struct {
	ID          int64  `gorm:"primarykey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Role        Role   `gorm:"type:varchar(32)" json:"role"`
	TgUserID    *int64 `gorm:"column:tg_user_id;uniqueIndex" json:"tg_user_id,omitempty"`
}
