package models

import (
	"time"

	"github.com/TariqTawalbeh/employees-board/pkg/enums"
	"github.com/google/uuid"
)

// User is the canonical credential record. Soft deletion is explicit via
// DeletedAt so that visibility filters stay visible in query code; the email
// uniqueness constraint only covers live rows (partial index in migrations).
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:text;not null"`
	Email        string     `gorm:"type:text;not null"`
	PhoneNumber  *string    `gorm:"column:phone_number"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	RoleID       enums.Role `gorm:"column:role_id;not null"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    *time.Time `gorm:"column:deleted_at"`
}

// IsDeleted reports whether the record has been soft deleted.
func (u User) IsDeleted() bool {
	return u.DeletedAt != nil
}
