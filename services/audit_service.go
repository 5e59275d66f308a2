package services

import (
	"encoding/json"

	"metanoia_app_go/models"

	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	UserID    string
	UserName  string
	IPAddress string
	UserAgent string
}

// AuditEvent describes one admin operation on a resource
type AuditEvent struct {
	Action       models.AuditAction
	ResourceType string
	ResourceID   string
	ResourceName string
	Description  string
	OldValues    interface{}
	NewValues    interface{}
}

// LogAuditEvent stores an audit log entry without blocking the request
func LogAuditEvent(db *gorm.DB, actx AuditContext, event AuditEvent) {
	go func() {
		if err := WriteAuditEvent(db, actx, event); err != nil {
			zlog.Error().Err(err).
				Str("resource_type", event.ResourceType).
				Str("resource_id", event.ResourceID).
				Msg("Failed to create audit log")
		}
	}()
}

// WriteAuditEvent stores an audit log entry synchronously
func WriteAuditEvent(db *gorm.DB, actx AuditContext, event AuditEvent) error {
	entry := models.AuditLog{
		UserID:       ptrIfNotEmpty(actx.UserID),
		UserName:     actx.UserName,
		ResourceType: event.ResourceType,
		ResourceID:   event.ResourceID,
		ResourceName: event.ResourceName,
		Action:       event.Action,
		Description:  event.Description,
		OldValues:    marshalAuditValues(event.OldValues),
		NewValues:    marshalAuditValues(event.NewValues),
		IPAddress:    actx.IPAddress,
		UserAgent:    actx.UserAgent,
	}
	return db.Create(&entry).Error
}

func marshalAuditValues(v interface{}) string {
	if v == nil {
		return ""
	}
	bytes, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(bytes)
}

// ptrIfNotEmpty returns a pointer to the string if not empty, nil otherwise
func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetResourceAuditHistory retrieves the audit history for a specific resource
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
