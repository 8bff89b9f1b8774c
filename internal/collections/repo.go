package collections

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/big-riz/HandcashIntegration/pkg/db"
	"github.com/big-riz/HandcashIntegration/pkg/db/models"
)

// Repository exposes collection persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a collections repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDTO holds the data required to persist a collection row.
type CreateDTO struct {
	HandcashCollectionID string
	Name                 string
	Description          *string
	ImageURL             *string
}

// GetOrCreate inserts the collection and falls back to a fetch when another
// request already inserted the same vendor id. The unique index on
// handcash_collection_id makes the insert the arbiter, so two concurrent
// first mints converge on one row without a read-then-write window.
func (r *Repository) GetOrCreate(ctx context.Context, dto CreateDTO) (*models.Collection, error) {
	collection := &models.Collection{
		ID:                   uuid.New(),
		HandcashCollectionID: dto.HandcashCollectionID,
		Name:                 dto.Name,
		Description:          dto.Description,
		ImageURL:             dto.ImageURL,
	}
	err := r.db.WithContext(ctx).Create(collection).Error
	if err == nil {
		return collection, nil
	}
	if !db.IsUniqueViolation(err, "idx_collections_handcash_id") {
		return nil, err
	}
	return r.FindByHandcashID(ctx, dto.HandcashCollectionID)
}

// FindByHandcashID retrieves the collection with the vendor-assigned id.
func (r *Repository) FindByHandcashID(ctx context.Context, handcashID string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).
		Where("handcash_collection_id = ?", handcashID).
		First(&collection).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// FindByID loads a collection by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// List returns all known collections, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}

// First returns the oldest collection, if any. The integration operates a
// single default collection today.
func (r *Repository) First(ctx context.Context) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&collection).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}
