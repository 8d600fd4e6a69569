package access

import (
	"github.com/TariqTawalbeh/employees-board/pkg/enums"
	pkgerrors "github.com/TariqTawalbeh/employees-board/pkg/errors"
	"github.com/google/uuid"
)

// Operation enumerates the guarded directory operations.
type Operation string

const (
	OpListUsers  Operation = "users.list"
	OpGetUser    Operation = "users.get"
	OpCreateUser Operation = "users.create"
	OpUpdateUser Operation = "users.update"
	OpDeleteUser Operation = "users.delete"
)

// Actor is the authenticated caller, with the role freshly resolved from the
// store rather than taken from the token.
type Actor struct {
	ID   uuid.UUID
	Role enums.Role
}

// Decide returns nil when the actor may perform op against the target user.
// Admin-gate violations surface as UNAUTHORIZED; the self-service violation on
// update surfaces as FORBIDDEN. Decide never touches storage.
func Decide(actor Actor, op Operation, targetID uuid.UUID) error {
	switch op {
	case OpListUsers, OpGetUser, OpCreateUser, OpDeleteUser:
		if actor.Role != enums.RoleAdministrator {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "administrator role required")
		}
		return nil

	case OpUpdateUser:
		if actor.ID != targetID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "users may only update their own record")
		}
		return nil

	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "unknown operation")
	}
}
