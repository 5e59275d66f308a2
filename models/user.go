package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Role        string     `gorm:"not null;default:editor" json:"role"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsAdmin checks if the user can manage other users and settings
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole checks if the role is valid
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
