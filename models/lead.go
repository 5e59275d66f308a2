package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead is a visitor submission attributed to a landing page.
// Leads are never edited after creation.
type Lead struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// No FK constraint: a landing page can be deleted while its leads remain
	LandingPageID string       `gorm:"type:uuid;not null;index" json:"landing_page_id"`
	LandingPage   *LandingPage `gorm:"foreignKey:LandingPageID;constraint:-" json:"landing_page,omitempty"`

	Name     string `gorm:"not null" json:"name"`
	WhatsApp string `gorm:"column:whatsapp;not null" json:"whatsapp"`
	Email    string `gorm:"not null" json:"email"`
	Age      int    `gorm:"not null" json:"age"`

	// Audit fields
	IPAddress string `json:"-"`
	UserAgent string `gorm:"type:text" json:"-"`
}

// BeforeCreate hook to generate UUID
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// IsOrphaned reports whether the landing page this lead points to no longer exists.
// Only meaningful when LandingPage was preloaded.
func (l *Lead) IsOrphaned() bool {
	return l.LandingPage == nil
}

// TableName specifies the table name for Lead model
func (Lead) TableName() string {
	return "leads"
}
