package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/big-riz/HandcashIntegration/pkg/db/models"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts a user for the handle or refreshes the auth token of an
// existing one. Every wallet connect replaces the stored token.
func (r *Repository) Upsert(ctx context.Context, handle, authToken string) (*models.User, error) {
	user := &models.User{ID: uuid.New(), Handle: handle, AuthToken: authToken}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "handle"}},
			DoUpdates: clause.AssignmentColumns([]string{"auth_token", "updated_at"}),
		}).
		Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.FindByHandle(ctx, handle)
}

// FindByHandle retrieves the user matching the wallet handle.
func (r *Repository) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ClearAuthToken blanks the stored token on logout.
func (r *Repository) ClearAuthToken(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("auth_token", "").Error
}
