package minting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/big-riz/HandcashIntegration/internal/collections"
	"github.com/big-riz/HandcashIntegration/internal/items"
	"github.com/big-riz/HandcashIntegration/internal/seeds"
	"github.com/big-riz/HandcashIntegration/pkg/config"
	"github.com/big-riz/HandcashIntegration/pkg/db/models"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
	"github.com/big-riz/HandcashIntegration/pkg/metrics"
)

const (
	defaultCollectionName        = "Test Collection"
	defaultCollectionDescription = "A test collection for minted items"
	defaultCollectionImageURL    = defaultItemImageURL

	kindCollection = "collection"
	kindItems      = "items"
)

var errOrderPending = errors.New("creation order still pending")

// minter is the vendor surface the service needs.
type minter interface {
	CreateCollectionOrder(ctx context.Context, params handcash.CollectionOrderParams) (*handcash.CreationOrder, error)
	CreateItemsOrder(ctx context.Context, params handcash.ItemsOrderParams) (*handcash.CreationOrder, error)
	GetItemCreationOrder(ctx context.Context, orderID string) (*handcash.CreationOrder, error)
}

// Service orchestrates item mints: collection bootstrap, seed lifecycle,
// order submission, and the bounded finalization poll.
type Service struct {
	minter      minter
	collections *collections.Repository
	items       *items.Repository
	seeds       *seeds.Repository
	cfg         config.MintConfig
	metrics     *metrics.MintMetrics
	logger      *logger.Logger

	// sleep is swappable so tests skip the collection settle delay.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewService wires the minting service.
func NewService(
	m minter,
	collectionsRepo *collections.Repository,
	itemsRepo *items.Repository,
	seedsRepo *seeds.Repository,
	cfg config.MintConfig,
	mintMetrics *metrics.MintMetrics,
	logg *logger.Logger,
) *Service {
	if mintMetrics == nil {
		mintMetrics = metrics.NewMintMetrics(nil)
	}
	return &Service{
		minter:      m,
		collections: collectionsRepo,
		items:       itemsRepo,
		seeds:       seedsRepo,
		cfg:         cfg,
		metrics:     mintMetrics,
		logger:      logg,
		sleep:       sleepContext,
	}
}

// MintFromSeed derives item properties from the seed and mints them.
func (s *Service) MintFromSeed(ctx context.Context, userID uuid.UUID, seed, tokenSupply int) (*items.ItemDTO, error) {
	return s.Mint(ctx, userID, seed, ItemPropsFromSeed(seed, tokenSupply))
}

// Mint runs the full mint flow: ensure the collection exists, persist an
// active seed, submit the items order, poll until finalized, record the item,
// and settle the seed. The poll is bounded; a vendor that never finalizes
// surfaces a timeout instead of hanging the request.
func (s *Service) Mint(ctx context.Context, userID uuid.UUID, seed int, props ItemProps) (*items.ItemDTO, error) {
	collection, err := s.getOrCreateCollection(ctx)
	if err != nil {
		return nil, err
	}

	seedRow, err := s.seeds.Create(ctx, seed, props.ImageURL, props.TokenSupply)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist mint seed")
	}

	started := time.Now()
	order, err := s.minter.CreateItemsOrder(ctx, handcash.ItemsOrderParams{
		CollectionID: collection.HandcashCollectionID,
		Items: []handcash.ItemParams{{
			Name:        props.Name,
			Description: props.Description,
			Rarity:      props.Rarity,
			Attributes:  props.Attributes,
			MediaDetails: handcash.MediaDetails{
				Image: handcash.MediaImage{URL: props.ImageURL, ContentType: "image/png"},
			},
			Quantity: props.TokenSupply,
		}},
	})
	if err != nil {
		s.metrics.IncFailure(kindItems)
		s.deactivateSeed(ctx, seedRow.ID)
		return nil, err
	}

	finalized, err := s.awaitOrder(ctx, order.ID)
	if err != nil {
		s.metrics.IncFailure(kindItems)
		s.deactivateSeed(ctx, seedRow.ID)
		return nil, err
	}
	if len(finalized.Items) == 0 {
		s.metrics.IncFailure(kindItems)
		s.deactivateSeed(ctx, seedRow.ID)
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "creation order finalized without items")
	}

	minted := finalized.Items[0]
	supply := minted.Count
	if supply <= 0 {
		supply = props.TokenSupply
	}
	var description *string
	if minted.Description != "" {
		description = &minted.Description
	}

	row, err := s.items.Create(ctx, items.CreateDTO{
		UserID:         userID,
		CollectionID:   collection.ID,
		HandcashItemID: minted.ID,
		Origin:         minted.Origin,
		Name:           minted.Name,
		Description:    description,
		ImageURL:       minted.ImageURL,
		TokenSupply:    supply,
	})
	if err != nil {
		s.metrics.IncFailure(kindItems)
		s.deactivateSeed(ctx, seedRow.ID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist minted item")
	}

	s.deactivateSeed(ctx, seedRow.ID)
	s.metrics.IncSuccess(kindItems)
	s.metrics.ObserveDuration(kindItems, time.Since(started))

	ctx = s.logger.WithFields(ctx, map[string]any{
		"item_id":  row.ID.String(),
		"order_id": finalized.ID,
	})
	s.logger.Info(ctx, "item minted")

	return items.FromModel(row), nil
}

// getOrCreateCollection returns the default collection, bootstrapping it via
// a collection creation order on first use. Concurrent first mints converge
// on a single row through the unique vendor id index.
func (s *Service) getOrCreateCollection(ctx context.Context) (*models.Collection, error) {
	existing, err := s.collections.First(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load collection")
	}

	started := time.Now()
	order, err := s.minter.CreateCollectionOrder(ctx, handcash.CollectionOrderParams{
		Name:        defaultCollectionName,
		Description: defaultCollectionDescription,
		MediaDetails: handcash.MediaDetails{
			Image: handcash.MediaImage{URL: defaultCollectionImageURL, ContentType: "image/png"},
		},
	})
	if err != nil {
		s.metrics.IncFailure(kindCollection)
		return nil, err
	}

	// The vendor registers the collection asynchronously; polling too early
	// returns an empty order.
	if err := s.sleep(ctx, s.cfg.CollectionSettleDelay); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTimeout, err, "mint timed out")
	}

	settled, err := s.awaitOrder(ctx, order.ID)
	if err != nil {
		s.metrics.IncFailure(kindCollection)
		return nil, err
	}

	handcashCollectionID := settled.ID
	if len(settled.Items) > 0 && settled.Items[0].ID != "" {
		handcashCollectionID = settled.Items[0].ID
	}

	description := defaultCollectionDescription
	imageURL := defaultCollectionImageURL
	collection, err := s.collections.GetOrCreate(ctx, collections.CreateDTO{
		HandcashCollectionID: handcashCollectionID,
		Name:                 defaultCollectionName,
		Description:          &description,
		ImageURL:             &imageURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist collection")
	}

	s.metrics.IncSuccess(kindCollection)
	s.metrics.ObserveDuration(kindCollection, time.Since(started))
	return collection, nil
}

// awaitOrder polls the creation order with exponential backoff until it
// finalizes or the poll budget is spent.
func (s *Service) awaitOrder(ctx context.Context, orderID string) (*handcash.CreationOrder, error) {
	var finalized *handcash.CreationOrder

	backoff := retry.NewExponential(s.cfg.PollInitialDelay)
	backoff = retry.WithCappedDuration(s.cfg.PollMaxInterval, backoff)
	backoff = retry.WithMaxDuration(s.cfg.PollTimeout, backoff)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		order, err := s.minter.GetItemCreationOrder(ctx, orderID)
		if err != nil {
			// Transient vendor failures should not abort the poll.
			return retry.RetryableError(err)
		}
		if !order.Finalized() {
			return retry.RetryableError(errOrderPending)
		}
		finalized = order
		return nil
	})
	if err != nil {
		s.metrics.IncTimeout()
		return nil, pkgerrors.Wrap(pkgerrors.CodeTimeout, err, "mint timed out")
	}
	return finalized, nil
}

func (s *Service) deactivateSeed(ctx context.Context, id uuid.UUID) {
	if err := s.seeds.Deactivate(ctx, id); err != nil {
		s.logger.Error(ctx, "deactivate seed", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
