package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fifoOrder is the consumption order of batches: oldest receipt first, ties
// broken by the time-ordered batch ID.
const fifoOrder = "received_at ASC, id ASC"

// tenantScope restricts a query to one tenant's rows.
func tenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// forUpdate adds a row lock on dialects that support it. SQLite serialises
// writers at the database level, so the clause is skipped there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() != "postgres" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
