package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"metanoia_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leadForm() url.Values {
	return url.Values{
		"name":     {"Ana"},
		"whatsapp": {"11999990000"},
		"email":    {"ana@x.com"},
		"age":      {"30"},
	}
}

func TestPublicLandingPageHandler(t *testing.T) {
	database := setupTestDB(t)

	page := createLandingPage(t, database, "retiro-2025", true)
	database.Model(page).Updates(map[string]interface{}{
		"subtitle":          "Três dias de imersão",
		"about_title":       "Sobre o retiro",
		"about_description": "Um **fim de semana** diferente <script>alert(1)</script>",
		"button_text":       "Quero participar",
		"color_primary":     "#112233",
		"banner_type":       models.BannerTypeVideo,
		"banner_url":        "https://youtu.be/dQw4w9WgXcQ",
	})
	createLandingPage(t, database, "abc", false)

	t.Run("renders active page", func(t *testing.T) {
		c, rec := newContext(httptest.NewRequest(http.MethodGet, "/lp/retiro-2025", nil), "slug", "retiro-2025")

		require.NoError(t, PublicLandingPageHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "Título retiro-2025")
		assert.Contains(t, body, "Três dias de imersão")
		assert.Contains(t, body, "<strong>fim de semana</strong>")
		assert.NotContains(t, body, "<script>alert(1)</script>")
		assert.Contains(t, body, "https://www.youtube.com/embed/dQw4w9WgXcQ")
		assert.Contains(t, body, "--lp-primary: #112233;")
		assert.Contains(t, body, `action="/lp/retiro-2025/leads"`)
		assert.Contains(t, body, "Quero participar")
		assert.Contains(t, body, `<link rel="canonical" href="https://metanoia.test/lp/retiro-2025">`)
	})

	t.Run("inactive page is not found", func(t *testing.T) {
		c, rec := newContext(httptest.NewRequest(http.MethodGet, "/lp/abc", nil), "slug", "abc")

		require.NoError(t, PublicLandingPageHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Página não encontrada")
		assert.Contains(t, rec.Body.String(), `href="/"`)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		c, rec := newContext(httptest.NewRequest(http.MethodGet, "/lp/nada", nil), "slug", "nada")

		require.NoError(t, PublicLandingPageHandler(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no colors emits no style", func(t *testing.T) {
		createLandingPage(t, database, "sem-cor", true)
		c, rec := newContext(httptest.NewRequest(http.MethodGet, "/lp/sem-cor", nil), "slug", "sem-cor")

		require.NoError(t, PublicLandingPageHandler(c))
		assert.NotContains(t, rec.Body.String(), `class="landing-page" style=`)
	})
}

func TestPublicLeadSubmitHandler(t *testing.T) {
	database := setupTestDB(t)
	page := createLandingPage(t, database, "palestra-mindset-foco", true)

	t.Run("valid submission creates exactly one lead", func(t *testing.T) {
		req := htmx(formRequest(http.MethodPost, "/lp/palestra-mindset-foco/leads", leadForm()))
		c, rec := newContext(req, "slug", page.Slug)

		require.NoError(t, PublicLeadSubmitHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Inscrição enviada!")
		assert.Contains(t, rec.Body.String(), "ana@x.com")
		assert.Contains(t, rec.Body.String(), `hx-get="/lp/palestra-mindset-foco/form"`)

		var leads []models.Lead
		require.NoError(t, database.Where("landing_page_id = ?", page.ID).Find(&leads).Error)
		require.Len(t, leads, 1)
		assert.Equal(t, "Ana", leads[0].Name)
		assert.Equal(t, 30, leads[0].Age)
	})

	t.Run("full page confirmation without htmx", func(t *testing.T) {
		form := leadForm()
		form.Set("name", "Bruno")
		c, rec := newContext(formRequest(http.MethodPost, "/lp/palestra-mindset-foco/leads", form), "slug", page.Slug)

		require.NoError(t, PublicLeadSubmitHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
		assert.Contains(t, rec.Body.String(), "Inscrição enviada!")
	})

	t.Run("validation failure keeps values", func(t *testing.T) {
		form := leadForm()
		form.Set("age", "-3")
		form.Set("name", "Carla")
		req := htmx(formRequest(http.MethodPost, "/lp/palestra-mindset-foco/leads", form))
		c, rec := newContext(req, "slug", page.Slug)

		require.NoError(t, PublicLeadSubmitHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Informe uma idade válida")
		assert.Contains(t, rec.Body.String(), `value="Carla"`)
		assert.Contains(t, rec.Body.String(), `role="alert"`)

		var count int64
		database.Model(&models.Lead{}).Where("name = ?", "Carla").Count(&count)
		assert.Zero(t, count)
	})

	t.Run("inactive page rejects submissions", func(t *testing.T) {
		inactive := createLandingPage(t, database, "fechada", false)
		c, _ := newContext(formRequest(http.MethodPost, "/lp/fechada/leads", leadForm()), "slug", inactive.Slug)

		err := PublicLeadSubmitHandler(c)
		require.Error(t, err)
		status, _ := errorResponse(err)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("captcha required when configured", func(t *testing.T) {
		req := htmx(formRequest(http.MethodPost, "/lp/palestra-mindset-foco/leads", leadForm()))
		c, rec := newContext(req, "slug", page.Slug)
		cfg := testConfig()
		cfg.TurnstileSecretKey = "secret"
		c.Set("config", cfg)

		require.NoError(t, PublicLeadSubmitHandler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Complete a verificação de segurança")
	})
}

func TestPublicLeadSubmitHandler_WriteFailure(t *testing.T) {
	database := setupTestDB(t)
	page := createLandingPage(t, database, "falha", true)
	require.NoError(t, database.Migrator().DropTable(&models.Lead{}))

	form := leadForm()
	form.Set("name", "Diego")
	req := htmx(formRequest(http.MethodPost, "/lp/falha/leads", form))
	c, rec := newContext(req, "slug", page.Slug)

	require.NoError(t, PublicLeadSubmitHandler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `id="lead-form"`)
	assert.Contains(t, body, `value="Diego"`)
	assert.Contains(t, body, "Erro ao enviar inscrição. Tente novamente.")
	assert.NotContains(t, body, "no such table")
	assert.NotContains(t, body, "Inscrição enviada!")
}

func TestPublicLeadFormHandler(t *testing.T) {
	database := setupTestDB(t)
	createLandingPage(t, database, "retiro", true)

	t.Run("htmx gets a blank form", func(t *testing.T) {
		c, rec := newContext(htmx(httptest.NewRequest(http.MethodGet, "/lp/retiro/form", nil)), "slug", "retiro")

		require.NoError(t, PublicLeadFormHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="lead-form"`)
		assert.Contains(t, rec.Body.String(), `name="name" type="text" value=""`)
	})

	t.Run("browser is redirected to the page", func(t *testing.T) {
		c, rec := newContext(httptest.NewRequest(http.MethodGet, "/lp/retiro/form", nil), "slug", "retiro")

		require.NoError(t, PublicLeadFormHandler(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/lp/retiro", rec.Header().Get("Location"))
	})
}
