package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit modules, one per recompute surface plus the user-driven ones.
const (
	AuditModuleDotacion       = "dotacion"
	AuditModuleBrechas        = "brechas"
	AuditModulePresupuesto    = "presupuesto"
	AuditModuleCumplimiento   = "cumplimiento"
	AuditModuleAsignaciones   = "asignaciones"
	AuditModuleAdministracion = "administracion"
)

// Audit actions.
const (
	AuditActionRecompute = "recompute"
	AuditActionCheck     = "check"
	AuditActionAssign    = "assign"
	AuditActionUpdate    = "update"
	AuditActionReset     = "reset"
)

// DefaultAuditActor is recorded when no explicit actor is supplied.
const DefaultAuditActor = "system"

// AuditLogEntry is one append-only audit trail row. Entries are never
// updated; the only delete path is the explicit full reset.
type AuditLogEntry struct {
	ID        uuid.UUID `json:"id"`
	Module    string    `json:"module"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}
