package users

import (
	"time"

	"github.com/TariqTawalbeh/employees-board/pkg/db/models"
	"github.com/TariqTawalbeh/employees-board/pkg/enums"
	"github.com/google/uuid"
)

// UserDTO is the transport shape that omits the password hash.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	RoleID      enums.Role `json:"roleId"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// UserSummary is the trimmed listing shape.
type UserSummary struct {
	ID     uuid.UUID  `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	RoleID enums.Role `json:"roleId"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
// New records always start active.
type CreateUserDTO struct {
	Name         string
	Email        string
	PhoneNumber  *string
	PasswordHash string
	RoleID       enums.Role
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		RoleID:      u.RoleID,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func SummaryFromModel(u *models.User) UserSummary {
	return UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		RoleID: u.RoleID,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         c.Name,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		PasswordHash: c.PasswordHash,
		RoleID:       c.RoleID,
		IsActive:     true,
	}
}
