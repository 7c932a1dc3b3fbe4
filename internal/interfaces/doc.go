// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// The application uses several categories of interfaces:
//
// ## Data Access Interfaces
//
//   - ClassStore: Class (study folder) management (internal/services/interfaces.go)
//   - DocumentStore: Document CRUD, status and ordering (internal/services/interfaces.go)
//   - DocumentOrderStore: The reorder service's view of the document repository (internal/services/reorder.go)
//   - NotesSaver: The autosaver's write path for class notes (internal/services/autosave.go)
//
// ## Background Maintenance Interfaces
//
//   - tasks.CounterAuditor: Counter audit driven by the task queue (internal/tasks/integrity.go)
//   - scheduler.Auditor: Counter audit driven by the cron scheduler (internal/scheduler/integrity.go)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., flashcards):
//
//  1. Create sub-package: internal/database/flashcards/
//
//  2. Define repository:
//
//     type Repository struct { db *database.Database }
//
//     func NewRepository(db *database.Database) *Repository
//
//  3. Implement interface methods; run multi-collection writes through
//     db.Transact so they commit or roll back as one unit
//
//  4. Add compile-time check:
//
//     var _ FlashcardStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
