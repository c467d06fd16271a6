package model

import (
	"time"
)

// AuditEntry records one mutation of an entity.
type AuditEntry struct {
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	At         time.Time `json:"at"`
}

const (
	// Action types
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
	AuditActionLogin  = "login"
	AuditActionLogout = "logout"

	// Entity types
	AuditEntityAppointment  = "appointment"
	AuditEntityPatient      = "patient"
	AuditEntityFacility     = "facility"
	AuditEntityOrganization = "organization"
	AuditEntityRole         = "role"
	AuditEntityUser         = "user"
	AuditEntitySpeciality   = "speciality"
)
