package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/TariqTawalbeh/employees-board/api/responses"
	"github.com/TariqTawalbeh/employees-board/internal/access"
	pkgAuth "github.com/TariqTawalbeh/employees-board/pkg/auth"
	"github.com/TariqTawalbeh/employees-board/pkg/config"
	"github.com/TariqTawalbeh/employees-board/pkg/db/models"
	pkgerrors "github.com/TariqTawalbeh/employees-board/pkg/errors"
	"github.com/TariqTawalbeh/employees-board/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActorResolver loads the live user record for the token subject. The role is
// always re-read from storage; tokens carry identity only.
type ActorResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth validates a bearer token and seeds the request context with the actor.
func Auth(cfg config.JWTConfig, resolver ActorResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			// Only the bearer scheme is accepted; a bare token is not a
			// credential.
			if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			token := strings.TrimSpace(raw[7:])
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			user, err := resolver.FindByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve actor"))
				return
			}

			actor := access.Actor{ID: user.ID, Role: user.RoleID}
			ctx := WithActor(r.Context(), actor)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    actor.ID.String(),
					"actor_role": actor.Role.String(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
