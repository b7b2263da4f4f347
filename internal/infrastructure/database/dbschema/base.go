// Package dbschema holds the persisted table definitions and their
// converters to and from domain types.
package dbschema

import "time"

// BaseModel carries the surrogate key and timestamps shared by every table.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}
