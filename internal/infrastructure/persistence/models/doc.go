// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - accounting.go: reference catalogs (ledgers, currencies, accounts charts, sectors,
//   subledger accounts), posting movements, exchange rates and the voucher import queue
package models
