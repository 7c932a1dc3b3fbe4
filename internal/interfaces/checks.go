package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/studydesk/studydesk/internal/database/classes"
	"github.com/studydesk/studydesk/internal/database/documents"
	"github.com/studydesk/studydesk/internal/services"
	"github.com/studydesk/studydesk/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// ClassStore implementations
var _ services.ClassStore = (*classes.Repository)(nil)
var _ services.NotesSaver = (*classes.Repository)(nil)

// DocumentStore implementations
var _ services.DocumentStore = (*documents.Repository)(nil)
var _ services.DocumentOrderStore = (*documents.Repository)(nil)

// =============================================================================
// Background Maintenance
// =============================================================================

// Integrity auditor implementations
var _ tasks.CounterAuditor = (*services.Integrity)(nil)
