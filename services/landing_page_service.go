package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"metanoia_app_go/models"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LandingPageInput holds the admin-editable fields of a landing page
type LandingPageInput struct {
	Slug             string
	Name             string
	Title            string
	Subtitle         string
	Description      string
	BannerType       string
	BannerURL        string
	AboutTitle       string
	AboutDescription string
	ButtonText       string
	Colors           models.ThemeColors
	Active           bool
}

// InputFromLandingPage copies the editable fields of an existing page
func InputFromLandingPage(lp *models.LandingPage) LandingPageInput {
	return LandingPageInput{
		Slug:             lp.Slug,
		Name:             lp.Name,
		Title:            lp.Title,
		Subtitle:         lp.Subtitle,
		Description:      lp.Description,
		BannerType:       lp.BannerType,
		BannerURL:        lp.BannerURL,
		AboutTitle:       lp.AboutTitle,
		AboutDescription: lp.AboutDescription,
		ButtonText:       lp.ButtonText,
		Colors:           lp.Colors,
		Active:           lp.Active,
	}
}

// Normalize trims text fields, derives the slug from the name (or title) when
// it is blank and canonicalizes a manually typed slug.
func (in *LandingPageInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.BannerURL = strings.TrimSpace(in.BannerURL)
	in.AboutTitle = strings.TrimSpace(in.AboutTitle)
	in.ButtonText = strings.TrimSpace(in.ButtonText)
	in.BannerType = strings.ToLower(strings.TrimSpace(in.BannerType))
	if in.BannerType == "" {
		in.BannerType = models.BannerTypeImage
	}

	source := strings.TrimSpace(in.Slug)
	if source == "" {
		source = in.Name
	}
	if source == "" {
		source = in.Title
	}
	in.Slug = GenerateSlug(source)
}

// Validate checks a normalized input
func (in *LandingPageInput) Validate() error {
	if in.Title == "" {
		return NewValidationError("O título é obrigatório")
	}
	if in.Slug == "" {
		return NewValidationError("Slug inválido: use letras, números ou hífens")
	}
	if !models.IsValidBannerType(in.BannerType) {
		return NewValidationError("Tipo de banner inválido")
	}
	if !isBannerURL(in.BannerURL) {
		return NewValidationError("URL do banner inválida")
	}
	return nil
}

// isBannerURL accepts an empty value, a site-relative path or an absolute http(s) URL
func isBannerURL(raw string) bool {
	if raw == "" {
		return true
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (in *LandingPageInput) applyTo(lp *models.LandingPage) {
	lp.Slug = in.Slug
	lp.Name = in.Name
	lp.Title = in.Title
	lp.Subtitle = in.Subtitle
	lp.Description = in.Description
	lp.BannerType = in.BannerType
	lp.BannerURL = in.BannerURL
	lp.AboutTitle = in.AboutTitle
	lp.AboutDescription = in.AboutDescription
	lp.ButtonText = in.ButtonText
	lp.Colors = in.Colors
	lp.Active = in.Active
}

// LandingPageStore persists landing pages. Slugs are unique: a pre-insert
// lookup rejects known duplicates and the unique index catches races.
type LandingPageStore struct {
	db *gorm.DB
}

// NewLandingPageStore creates a store over db
func NewLandingPageStore(db *gorm.DB) *LandingPageStore {
	return &LandingPageStore{db: db}
}

// Create inserts a new landing page from input
func (s *LandingPageStore) Create(ctx context.Context, in LandingPageInput) (*models.LandingPage, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.slugTaken(ctx, in.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	lp := &models.LandingPage{}
	in.applyTo(lp)
	if err := s.db.WithContext(ctx).Create(lp).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		zlog.Error().Err(err).Str("slug", in.Slug).Msg("Failed to create landing page")
		return nil, Internal(err, "salvar landing page")
	}

	return lp, nil
}

// Update overwrites the editable fields of an existing page in place.
// The slug is checked against every other page; CreatedAt is never changed.
func (s *LandingPageStore) Update(ctx context.Context, id string, in LandingPageInput) (*models.LandingPage, error) {
	lp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.slugTaken(ctx, in.Slug, lp.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateSlug
	}

	in.applyTo(lp)
	if err := s.db.WithContext(ctx).Save(lp).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		zlog.Error().Err(err).Str("landing_page_id", id).Msg("Failed to update landing page")
		return nil, Internal(err, "salvar landing page")
	}

	return lp, nil
}

// Delete removes a page permanently. Its leads are kept.
func (s *LandingPageStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&models.LandingPage{})
	if result.Error != nil {
		zlog.Error().Err(result.Error).Str("landing_page_id", id).Msg("Failed to delete landing page")
		return Internal(result.Error, "excluir landing page")
	}
	if result.RowsAffected == 0 {
		return ErrLandingPageNotFound
	}
	return nil
}

// SetActive publishes or unpublishes a page
func (s *LandingPageStore) SetActive(ctx context.Context, id string, active bool) (*models.LandingPage, error) {
	lp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(lp).Update("active", active).Error; err != nil {
		zlog.Error().Err(err).Str("landing_page_id", id).Msg("Failed to toggle landing page")
		return nil, Internal(err, "atualizar landing page")
	}
	lp.Active = active
	return lp, nil
}

// List returns every page, newest first
func (s *LandingPageStore) List(ctx context.Context) ([]models.LandingPage, error) {
	return s.Search(ctx, "")
}

// Search returns pages whose name, title or slug contain query, newest first
func (s *LandingPageStore) Search(ctx context.Context, query string) ([]models.LandingPage, error) {
	q := s.db.WithContext(ctx).Model(&models.LandingPage{})
	if query = strings.TrimSpace(query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(title) LIKE ? OR slug LIKE ?", pattern, pattern, pattern)
	}

	var pages []models.LandingPage
	if err := q.Order("created_at DESC").Find(&pages).Error; err != nil {
		zlog.Error().Err(err).Msg("Failed to list landing pages")
		return nil, Internal(err, "carregar landing pages")
	}
	return pages, nil
}

// Get loads a page by id regardless of its active flag
func (s *LandingPageStore) Get(ctx context.Context, id string) (*models.LandingPage, error) {
	var lp models.LandingPage
	if err := s.db.WithContext(ctx).First(&lp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLandingPageNotFound
		}
		zlog.Error().Err(err).Str("landing_page_id", id).Msg("Failed to load landing page")
		return nil, Internal(err, "carregar landing page")
	}
	return &lp, nil
}

// ResolveBySlug finds the active page for a public slug.
// Inactive and missing pages are reported the same way.
func (s *LandingPageStore) ResolveBySlug(ctx context.Context, slug string) (*models.LandingPage, error) {
	var lp models.LandingPage
	err := s.db.WithContext(ctx).
		Where("slug = ? AND active = ?", slug, true).
		First(&lp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLandingPageNotFound
		}
		zlog.Error().Err(err).Str("slug", slug).Msg("Failed to resolve landing page")
		return nil, Internal(err, "carregar página")
	}
	return &lp, nil
}

// slugTaken reports whether another page (excluding excludeID) uses slug
func (s *LandingPageStore) slugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.LandingPage{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		zlog.Error().Err(err).Str("slug", slug).Msg("Failed to check slug")
		return false, Internal(err, "verificar slug")
	}
	return count > 0, nil
}

// SlugFix records one slug rewritten by RepairSlugs
type SlugFix struct {
	ID   string
	Old  string
	New  string
	Name string
}

// RepairSlugs rewrites every stored slug that is not canonical, deriving
// blank ones from the name or title. Collisions get -2, -3... suffixes.
func (s *LandingPageStore) RepairSlugs(ctx context.Context) ([]SlugFix, error) {
	var pages []models.LandingPage
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&pages).Error; err != nil {
		return nil, Internal(err, "carregar landing pages")
	}

	var fixes []SlugFix
	for i := range pages {
		lp := &pages[i]
		if IsValidSlug(lp.Slug) {
			continue
		}

		in := LandingPageInput{Slug: lp.Slug, Name: lp.Name, Title: lp.Title}
		in.Normalize()
		base := in.Slug
		if base == "" {
			base = "pagina"
		}

		slug := base
		for n := 2; ; n++ {
			taken, err := s.slugTaken(ctx, slug, lp.ID)
			if err != nil {
				return fixes, err
			}
			if !taken {
				break
			}
			slug = base + "-" + strconv.Itoa(n)
		}

		if err := s.db.WithContext(ctx).Model(lp).Update("slug", slug).Error; err != nil {
			return fixes, Internal(err, "atualizar slug")
		}
		fixes = append(fixes, SlugFix{ID: lp.ID, Old: lp.Slug, New: slug, Name: lp.DisplayName()})
	}
	return fixes, nil
}
