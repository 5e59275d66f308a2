package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The site's editorial collections. They are managed by near-identical admin
// screens; the landing page workflow only needs them for dashboard counts.

// Talk is a lecture ("palestra") offered by the project
type Talk struct {
	ID          string     `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Title       string     `gorm:"not null" json:"title"`
	Speaker     string     `json:"speaker"`
	Description string     `gorm:"type:text" json:"description"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// Course is a multi-session course ("curso")
type Course struct {
	ID          string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Published   bool      `gorm:"not null;default:false" json:"published"`
}

// Content is a youth/family resource article ("conteúdo")
type Content struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `gorm:"not null" json:"title"`
	Audience  string    `json:"audience"` // jovens, familias
	Body      string    `gorm:"type:text" json:"body"`
}

func (t *Talk) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (Talk) TableName() string {
	return "talks"
}

func (Course) TableName() string {
	return "courses"
}

func (Content) TableName() string {
	return "contents"
}
