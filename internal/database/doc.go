// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, transactions, migrations
//	├── errors.go        # Error kinds shared by all repositories
//	├── classes/         # Class (study folder) CRUD operations
//	├── documents/       # Document CRUD, status and ordering
//	└── counters/        # Derived per-class counter maintenance
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./app.db")
//
//	// Create domain-specific repositories
//	classRepo := classes.NewRepository(db)
//	docRepo := documents.NewRepository(db)
//
//	// Use repositories
//	class, err := classRepo.Create("Algebra", false)
//	docs, err := docRepo.GetByClass(class.ID)
//
// # Transactions
//
// Writes that span collections (a document insert plus its class's counter
// bump, a class delete plus its document cascade) run through
// Database.Transact, which commits or rolls back the whole unit and maps
// failures onto the shared error kinds in errors.go.
//
// # Interface Implementations
//
//   - classes.Repository: implements services.ClassStore
//   - documents.Repository: implements services.DocumentStore
//
// Compile-time checks live in internal/interfaces.
package database
