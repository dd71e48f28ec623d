package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// entity types written to the audit log
const (
	EntityProject = "Project"
	EntityTask    = "Task"
	EntityUser    = "User"
	EntityRole    = "Role"
)

// AuditRecord is append-only. It lives in its own store and is not linked
// to the audited rows by foreign key.
type AuditRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EntityType   string         `gorm:"size:50;not null;index" json:"entityType"`
	EntityID     uint           `gorm:"not null" json:"entityId"`
	Action       AuditAction    `gorm:"size:10;not null" json:"action"`
	Timestamp    time.Time      `gorm:"not null;index" json:"timestamp"`
	Username     string         `gorm:"size:100;index" json:"username"`
	DataSnapshot datatypes.JSON `gorm:"type:jsonb" json:"dataSnapshot"`
}

func (AuditRecord) TableName() string {
	return "audit_logs"
}
