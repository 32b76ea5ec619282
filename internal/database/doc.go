// Package database provides the SQLite connection for side data.
//
// Book records are held in memory by the bookshelf package and are never
// written here. The database only stores the audit trail:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── audit/           # Audit event repository
//
// Sub-packages expose a Repository built on the shared *gorm.DB:
//
//	db, err := database.NewDatabase("./bookshelf-audit.db")
//	repo := audit.NewRepository(db.DB)
package database
