package seeds

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/big-riz/HandcashIntegration/pkg/db/models"
)

// Repository exposes mint seed persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a seeds repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create writes an active seed just before an item creation order is
// submitted. The row survives process crashes so in-flight orders remain
// discoverable.
func (r *Repository) Create(ctx context.Context, seed int, imageURL string, tokenSupply int) (*models.Seed, error) {
	row := &models.Seed{
		ID:          uuid.New(),
		Seed:        seed,
		ImageURL:    imageURL,
		Active:      true,
		TokenSupply: tokenSupply,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Deactivate marks the seed as settled once its order finalized or failed.
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Seed{}).
		Where("id = ?", id).
		UpdateColumn("active", false).Error
}

// ListActive returns seeds whose orders are still in flight, oldest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Seed, error) {
	var rows []models.Seed
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("init_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
