package models

import (
	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for audit log entries.
// The table is append-only.
type AuditEntryModel struct {
	BaseModel
	ActorID      *uuid.UUID   `gorm:"type:uuid;index"`
	Action       audit.Action `gorm:"type:varchar(100);not null;index"`
	ResourceType string       `gorm:"type:varchar(50);index:idx_audit_resource,priority:1"`
	ResourceID   *uuid.UUID   `gorm:"type:uuid;index:idx_audit_resource,priority:2"`
	Detail       string       `gorm:"type:text"`
	IP           string       `gorm:"type:varchar(45)"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain audit Entry
func (m *AuditEntryModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		BaseEntity:   m.BaseModel.ToDomain(),
		ActorID:      m.ActorID,
		Action:       m.Action,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Detail:       m.Detail,
		IP:           m.IP,
	}
}

// FromDomain populates the persistence model from a domain audit Entry
func (m *AuditEntryModel) FromDomain(entry *audit.Entry) {
	m.FromDomainBaseEntity(entry.BaseEntity)
	m.ActorID = entry.ActorID
	m.Action = entry.Action
	m.ResourceType = entry.ResourceType
	m.ResourceID = entry.ResourceID
	m.Detail = entry.Detail
	m.IP = entry.IP
}

// AuditEntryModelFromDomain creates a new persistence model from a domain Entry
func AuditEntryModelFromDomain(entry *audit.Entry) *AuditEntryModel {
	m := &AuditEntryModel{}
	m.FromDomain(entry)
	return m
}
