package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TariqTawalbeh/employees-board/internal/access"
	"github.com/TariqTawalbeh/employees-board/pkg/config"
	"github.com/TariqTawalbeh/employees-board/pkg/db"
	"github.com/TariqTawalbeh/employees-board/pkg/db/models"
	"github.com/TariqTawalbeh/employees-board/pkg/enums"
	pkgerrors "github.com/TariqTawalbeh/employees-board/pkg/errors"
	"github.com/TariqTawalbeh/employees-board/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const emailLiveConstraint = "users_email_live_key"

// Service defines the directory behavior needed by the users controller.
type Service interface {
	List(ctx context.Context) ([]UserSummary, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Create(ctx context.Context, params CreateParams) (*UserDTO, error)
	Update(ctx context.Context, actor access.Actor, id uuid.UUID, params UpdateParams) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindVisibleByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListVisible(ctx context.Context) ([]models.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)
}

type service struct {
	repo        repository
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// ServiceParams bundles the dependencies required to build a directory service.
type ServiceParams struct {
	Repo           repository
	PasswordConfig config.PasswordConfig
	Now            func() time.Time
}

// NewService constructs a directory service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		passwordCfg: params.PasswordConfig,
		now:         now,
	}, nil
}

// CreateParams carries an administrator's request to add a user.
type CreateParams struct {
	Name        string
	Email       string
	PhoneNumber *string
	Password    string
	RoleID      enums.Role
}

// UpdateParams carries a self-service profile update. Nil fields are untouched.
type UpdateParams struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Password    *string
	RoleID      *enums.Role
	IsActive    *bool
}

func (p UpdateParams) empty() bool {
	return p.Name == nil && p.Email == nil && p.PhoneNumber == nil &&
		p.Password == nil && p.RoleID == nil && p.IsActive == nil
}

func (s *service) List(ctx context.Context) ([]UserSummary, error) {
	rows, err := s.repo.ListVisible(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}

	list := make([]UserSummary, 0, len(rows))
	for i := range rows {
		list = append(list, SummaryFromModel(&rows[i]))
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindVisibleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return FromModel(user), nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*UserDTO, error) {
	if !params.RoleID.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role id")
	}

	hash, err := security.HashPassword(params.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Name:         strings.TrimSpace(params.Name),
		Email:        normalizeEmail(params.Email),
		PhoneNumber:  params.PhoneNumber,
		PasswordHash: hash,
		RoleID:       params.RoleID,
	})
	if err != nil {
		if db.IsUniqueViolation(err, emailLiveConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, actor access.Actor, id uuid.UUID, params UpdateParams) (*UserDTO, error) {
	if err := access.Decide(actor, access.OpUpdateUser, id); err != nil {
		return nil, err
	}
	if params.empty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	updates := map[string]any{}
	if params.Name != nil {
		updates["name"] = strings.TrimSpace(*params.Name)
	}
	if params.Email != nil {
		updates["email"] = normalizeEmail(*params.Email)
	}
	if params.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*params.PhoneNumber)
	}
	if params.RoleID != nil {
		if !params.RoleID.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role id")
		}
		updates["role_id"] = *params.RoleID
	}
	if params.IsActive != nil {
		updates["is_active"] = *params.IsActive
	}
	if params.Password != nil {
		hash, err := security.HashPassword(*params.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
		}
		updates["password_hash"] = hash
	}

	affected, err := s.repo.UpdateFields(ctx, id, updates)
	if err != nil {
		if db.IsUniqueViolation(err, emailLiveConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading user")
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.SoftDelete(ctx, id, s.now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting user")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
