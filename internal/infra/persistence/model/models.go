// Package model contains the GORM persistence models. Models are kept
// separate from domain entities so the storage schema can evolve without
// leaking into the domain layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel maps the users table. The ID is generated by the application,
// not the database, so created rows are fully known without a round trip.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// KVRecordModel maps the kv_records table, a plain key/value store for
// JSON payloads. Per-user bundles live under "userData:<email>" and the
// persisted session under a fixed key.
type KVRecordModel struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for the KVRecordModel.
func (KVRecordModel) TableName() string {
	return "kv_records"
}
