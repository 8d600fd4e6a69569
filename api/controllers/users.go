package controllers

import (
	"net/http"

	"github.com/TariqTawalbeh/employees-board/api/middleware"
	"github.com/TariqTawalbeh/employees-board/api/responses"
	"github.com/TariqTawalbeh/employees-board/api/validators"
	"github.com/TariqTawalbeh/employees-board/internal/users"
	"github.com/TariqTawalbeh/employees-board/pkg/enums"
	pkgerrors "github.com/TariqTawalbeh/employees-board/pkg/errors"
	"github.com/TariqTawalbeh/employees-board/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateUserRequest is the administrator's payload for adding a user.
type CreateUserRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
	Password    string  `json:"password" validate:"required,min=8,max=128"`
	RoleID      int     `json:"role_id" validate:"required,oneof=1 2"`
}

// UpdateUserRequest is the self-service profile update payload. All fields are
// optional; an entirely empty payload is rejected downstream.
type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
	Password    *string `json:"password" validate:"omitempty,min=8,max=128"`
	RoleID      *int    `json:"role_id" validate:"omitempty,oneof=1 2"`
	IsActive    *bool   `json:"is_active"`
}

// UsersList returns the visible directory.
func UsersList(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"users": list})
	}
}

// UsersGet returns a single visible user.
func UsersGet(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UsersCreate lets an administrator add a user directly.
func UsersCreate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), users.CreateParams{
			Name:        req.Name,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Password:    req.Password,
			RoleID:      enums.Role(req.RoleID),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UsersUpdate applies a self-service profile update.
func UsersUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		id, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req UpdateUserRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var role *enums.Role
		if req.RoleID != nil {
			v := enums.Role(*req.RoleID)
			role = &v
		}
		updated, err := svc.Update(r.Context(), actor, id, users.UpdateParams{
			Name:        req.Name,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Password:    req.Password,
			RoleID:      role,
			IsActive:    req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// UsersDelete soft-deletes a member record.
func UsersDelete(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "user deleted successfully"})
	}
}

// A non-UUID path segment cannot name an existing record, so it maps to the
// same 404 as a missing row rather than leaking the id format.
func userIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "userId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return id, nil
}
