package models

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

func (a AuditAction) Valid() bool {
	return a == AuditCreate || a == AuditUpdate || a == AuditDelete
}

// AuditLog — неизменяемая запись журнала: кто, что и в каком состоянии менял.
type AuditLog struct {
	ID        string          `json:"id"`
	UserID    *string         `json:"userId,omitempty"`
	Action    AuditAction     `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entityId"`
	OldData   json.RawMessage `json:"oldData,omitempty"`
	NewData   json.RawMessage `json:"newData,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`

	User *UserRef `json:"user,omitempty"`
}

type AuditFilter struct {
	Action AuditAction
	Entity string
	UserID string
	Since  *time.Time
}
