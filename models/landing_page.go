package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Banner types
const (
	BannerTypeImage = "image"
	BannerTypeVideo = "video"
)

// ThemeColors are free-form CSS color values applied inline on the public page.
// Empty values are left unstyled.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Button     string `json:"button"`
}

type LandingPage struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index;<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
	Name string `gorm:"not null" json:"name"`

	// Hero
	Title       string `gorm:"not null" json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `gorm:"type:text" json:"description"`

	// Banner
	BannerType string `gorm:"not null;default:image" json:"banner_type"`
	BannerURL  string `json:"banner_url"`

	// About section (Markdown)
	AboutTitle       string `json:"about_title"`
	AboutDescription string `gorm:"type:text" json:"about_description"`

	ButtonText string      `json:"button_text"`
	Colors     ThemeColors `gorm:"embedded;embeddedPrefix:color_" json:"colors"`
	Active     bool        `gorm:"not null;default:false;index" json:"active"`
}

// BeforeCreate hook to generate UUID
func (lp *LandingPage) BeforeCreate(tx *gorm.DB) error {
	if lp.ID == "" {
		lp.ID = uuid.New().String()
	}
	return nil
}

// DisplayName is the label used in admin lists and exports
func (lp *LandingPage) DisplayName() string {
	if lp.Name != "" {
		return lp.Name
	}
	return lp.Title
}

// PublicPath is the public route for the page
func (lp *LandingPage) PublicPath() string {
	return "/lp/" + lp.Slug
}

// IsValidBannerType checks if the banner type is valid
func IsValidBannerType(bannerType string) bool {
	return bannerType == BannerTypeImage || bannerType == BannerTypeVideo
}

// TableName specifies the table name for LandingPage model
func (LandingPage) TableName() string {
	return "landing_pages"
}
