package middleware

import (
	"net/http"

	"github.com/TariqTawalbeh/employees-board/api/responses"
	"github.com/TariqTawalbeh/employees-board/internal/access"
	pkgerrors "github.com/TariqTawalbeh/employees-board/pkg/errors"
	"github.com/TariqTawalbeh/employees-board/pkg/logger"
	"github.com/google/uuid"
)

// RequireAdmin gates the wrapped handlers behind the access decision for op.
// Denials surface as 401, matching the admin-gate contract.
func RequireAdmin(op access.Operation, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if err := access.Decide(actor, op, uuid.Nil); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
