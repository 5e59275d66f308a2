package services

import (
	"testing"
	"time"

	"metanoia_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAuditEvent(t *testing.T) {
	db := setupTestDB(t)

	actx := AuditContext{UserID: "user-1", UserName: "Admin", IPAddress: "10.0.0.1"}
	err := WriteAuditEvent(db, actx, AuditEvent{
		Action:       models.AuditActionUpdate,
		ResourceType: "LandingPage",
		ResourceID:   "lp-1",
		ResourceName: "Palestra",
		Description:  "Landing page atualizada",
		OldValues:    map[string]interface{}{"title": "Antigo", "slug": "palestra"},
		NewValues:    map[string]interface{}{"title": "Novo", "slug": "palestra"},
	})
	require.NoError(t, err)

	logs, err := GetResourceAuditHistory(db, "LandingPage", "lp-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, "user-1", *entry.UserID)
	assert.Equal(t, models.AuditActionUpdate, entry.Action)

	changes := entry.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, "title", changes[0].Field)
	assert.Equal(t, "Antigo", changes[0].Old)
	assert.Equal(t, "Novo", changes[0].New)
}

func TestLogAuditEventAsync(t *testing.T) {
	db := setupTestDB(t)

	LogAuditEvent(db, AuditContext{UserName: "Admin"}, AuditEvent{
		Action:       models.AuditActionDelete,
		ResourceType: "LandingPage",
		ResourceID:   "lp-2",
	})

	assert.Eventually(t, func() bool {
		logs, err := GetResourceAuditHistory(db, "LandingPage", "lp-2")
		return err == nil && len(logs) == 1 && logs[0].UserID == nil
	}, 2*time.Second, 20*time.Millisecond)
}

func TestAuditLogIsImmutable(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, WriteAuditEvent(db, AuditContext{UserName: "Admin"}, AuditEvent{
		Action: models.AuditActionCreate, ResourceType: "LandingPage", ResourceID: "lp-3",
	}))

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Error(t, db.Model(&entry).Update("description", "changed").Error)
	assert.Error(t, db.Delete(&entry).Error)
}
