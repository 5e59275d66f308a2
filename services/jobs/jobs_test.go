package jobs

import (
	"testing"
	"time"

	"metanoia_app_go/config"
	"metanoia_app_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupJobsTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:mem_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Session{}, &models.User{}, &models.LandingPage{}, &models.Lead{}))
	return db
}

func TestCleanupSessions(t *testing.T) {
	db := setupJobsTestDB(t)
	db.Create(&models.Session{ID: "keep", Token: "keep", ExpiresAt: time.Now().Add(time.Hour)})
	db.Create(&models.Session{ID: "drop", Token: "drop", ExpiresAt: time.Now().Add(-time.Hour)})

	CleanupSessions(db)

	var ids []string
	db.Model(&models.Session{}).Pluck("id", &ids)
	assert.Equal(t, []string{"keep"}, ids)
}

func TestCollectLeadDigest(t *testing.T) {
	db := setupJobsTestDB(t)
	now := time.Now()

	palestra := &models.LandingPage{Slug: "palestra", Name: "Palestra", Title: "Palestra"}
	retiro := &models.LandingPage{Slug: "retiro", Name: "Retiro", Title: "Retiro"}
	require.NoError(t, db.Create(palestra).Error)
	require.NoError(t, db.Create(retiro).Error)

	recent := now.Add(-time.Hour)
	leads := []models.Lead{
		{LandingPageID: palestra.ID, Name: "A", WhatsApp: "1", Email: "a@x", CreatedAt: recent},
		{LandingPageID: palestra.ID, Name: "B", WhatsApp: "1", Email: "b@x", CreatedAt: recent},
		{LandingPageID: retiro.ID, Name: "C", WhatsApp: "1", Email: "c@x", CreatedAt: recent},
		{LandingPageID: "deleted-page", Name: "D", WhatsApp: "1", Email: "d@x", CreatedAt: recent},
		{LandingPageID: retiro.ID, Name: "Old", WhatsApp: "1", Email: "o@x", CreatedAt: now.Add(-48 * time.Hour)},
	}
	require.NoError(t, db.Create(&leads).Error)

	lines, err := CollectLeadDigest(db, now)
	require.NoError(t, err)
	assert.Equal(t, []DigestLine{
		{Page: "Palestra", Count: 2},
		{Page: "N/A", Count: 1},
		{Page: "Retiro", Count: 1},
	}, lines)

	email := BuildLeadDigestEmail("equipe@metanoia.org", "https://projetometanoia.org", lines, now)
	require.NotNil(t, email)
	assert.Contains(t, email.Subject, "4 nova(s)")
	assert.Contains(t, email.TextBody, "Palestra: 2")
	assert.Contains(t, email.HTMLBody, "https://projetometanoia.org/admin/leads")
}

func TestBuildLeadDigestEmailEscapesPageNames(t *testing.T) {
	lines := []DigestLine{{Page: `Retiro <img src=x onerror=alert(1)> & "Foco"`, Count: 3}}

	email := BuildLeadDigestEmail("equipe@metanoia.org", "https://projetometanoia.org/", lines, time.Now())
	require.NotNil(t, email)
	assert.NotContains(t, email.HTMLBody, "<img")
	assert.Contains(t, email.HTMLBody, "Retiro &lt;img src=x onerror=alert(1)&gt; &amp; &#34;Foco&#34;: <strong>3</strong>")
	assert.Contains(t, email.HTMLBody, `<a href="https://projetometanoia.org/admin/leads">`)
	assert.Contains(t, email.TextBody, "https://projetometanoia.org/admin/leads")
}

func TestBuildLeadDigestEmailEmpty(t *testing.T) {
	assert.Nil(t, BuildLeadDigestEmail("x@y", "", nil, time.Now()))
}

func TestStartScheduler(t *testing.T) {
	db := setupJobsTestDB(t)

	c, err := StartScheduler(db, &config.Config{})
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 2)

	c2, err := StartScheduler(db, &config.Config{LeadNotifyEmail: "equipe@metanoia.org"})
	require.NoError(t, err)
	defer c2.Stop()
	assert.Len(t, c2.Entries(), 3)
}
