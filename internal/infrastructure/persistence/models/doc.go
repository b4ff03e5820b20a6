// Package models contains GORM persistence models that map to database tables.
// Domain entities carry no GORM tags; repositories convert through the
// ToDomain/FromDomain mappers defined here.
//
// Structure:
// - base.go: shared columns (BaseModel, AggregateModel, TenantAggregateModel)
// - inventory.go: inventory items, batches and ledger entries
// - order.go: orders, order lines, recipes and refunds
package models
