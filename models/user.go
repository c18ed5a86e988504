package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values carried in the JWT and checked by the role gate.
const (
	RoleAuthor   = "AUTHOR"
	RoleReviewer = "REVIEWER"
	RoleEditor   = "EDITOR"
	RoleAdmin    = "ADMIN"
)

type User struct {
	UserID      string     `gorm:"primaryKey;column:user_id;size:36" json:"user_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Email       string     `gorm:"column:email;uniqueIndex" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	Role        string     `gorm:"column:role;default:AUTHOR" json:"role"`
	Affiliation *string    `gorm:"column:affiliation" json:"affiliation,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

// IsEditorial reports whether the user may act on the editorial side of the
// workflow (vetting, reviewer assignment, decisions, publication).
func (u *User) IsEditorial() bool {
	return u.Role == RoleEditor || u.Role == RoleAdmin
}

// TableName overrides
func (User) TableName() string {
	return "users"
}
