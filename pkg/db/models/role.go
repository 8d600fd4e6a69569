package models

import "time"

// Role mirrors the seeded roles lookup table. Business logic keys off the
// integer role_id directly; the table exists for referential integrity.
type Role struct {
	ID        int       `gorm:"primaryKey"`
	Name      string    `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
