package users

import (
	"context"
	"time"

	"github.com/TariqTawalbeh/employees-board/pkg/db/models"
	"github.com/TariqTawalbeh/employees-board/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations. Soft deletion and
// admin visibility are expressed as explicit WHERE clauses so every filter is
// auditable at the query site.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the live user matching the provided email. Soft-deleted
// rows never authenticate.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND deleted_at IS NULL", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a live user by their UUID regardless of role. Used to resolve
// the authenticated actor.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindVisibleByID loads a user through the directory visibility filter:
// live rows only, administrators excluded.
func (r *Repository) FindVisibleByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL AND role_id != ?", id, enums.RoleAdministrator).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListVisible returns every user visible to the directory, ordered by creation.
func (r *Repository) ListVisible(ctx context.Context) ([]models.User, error) {
	var list []models.User
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND role_id != ?", enums.RoleAdministrator).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateFields applies the provided column updates to a live administrator row
// and reports how many rows matched. The role filter mirrors the legacy update
// path: only role_id = 1 targets are ever matched, so member rows come back as
// zero rows and map to a not-found upstream.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role_id = ? AND deleted_at IS NULL", id, enums.RoleAdministrator).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// SoftDelete stamps deleted_at on a live member row and reports how many rows
// matched. Administrator rows are never deletable through the directory.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role_id = ? AND deleted_at IS NULL", id, enums.RoleMember).
		Updates(map[string]any{
			"deleted_at": at,
			"updated_at": at,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
