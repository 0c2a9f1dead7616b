package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/inventario/domain"
	"github.com/satriahrh/inventario/domain/entities"
	"github.com/satriahrh/inventario/domain/repositories"
)

// AssetService applies create/update/dispose semantics to the asset collection
type AssetService struct {
	base
	repo            repositories.AssetRepository
	publisher       repositories.EventPublisher
	defaultOperator string
	logger          *zap.Logger
}

// NewAssetService creates a new asset service. defaultOperator is recorded as
// CreatedBy when a creation patch does not name one.
func NewAssetService(
	repo repositories.AssetRepository,
	publisher repositories.EventPublisher,
	defaultOperator string,
	logger *zap.Logger,
	opts ...Option,
) *AssetService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &AssetService{
		base:            newBase(opts),
		repo:            repo,
		publisher:       publisher,
		defaultOperator: defaultOperator,
		logger:          logger,
	}
}

// Create validates the patch and stores a new asset with a fresh id and timestamps
func (s *AssetService) Create(ctx context.Context, patch entities.AssetPatch) (*entities.Asset, error) {
	asset := entities.NewAsset(patch)
	if err := asset.Validate(); err != nil {
		return nil, err
	}

	if asset.CreatedBy == "" {
		asset.CreatedBy = s.defaultOperator
	}
	now := s.now()
	asset.ID = s.newID()
	asset.CreatedAt = now
	asset.UpdatedAt = now

	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	s.logger.Info("Asset created",
		zap.String("assetID", asset.ID),
		zap.String("inventoryNumber", asset.InventoryNumber),
		zap.String("type", string(asset.Type)))
	s.publish(domain.AssetCreated, asset)

	return asset, nil
}

// Get returns a single asset
func (s *AssetService) Get(ctx context.Context, id string) (*entities.Asset, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every asset in insertion order, disposed ones included
func (s *AssetService) List(ctx context.Context) ([]*entities.Asset, error) {
	return s.repo.List(ctx)
}

// Update merges the present patch fields onto the stored asset. The merge,
// validation and timestamp run inside the repository's Modify.
func (s *AssetService) Update(ctx context.Context, id string, patch entities.AssetPatch) (*entities.Asset, error) {
	var wasDisposed bool
	asset, err := s.repo.Modify(ctx, id, func(a *entities.Asset) error {
		wasDisposed = a.IsDisposed()
		patch.ApplyTo(a)
		if err := a.Validate(); err != nil {
			return err
		}
		a.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, wrapMutation("update asset", err)
	}

	kind := domain.AssetUpdated
	if asset.IsDisposed() && !wasDisposed {
		kind = domain.AssetDisposed
	}
	s.logger.Info("Asset updated",
		zap.String("assetID", asset.ID),
		zap.String("status", string(asset.Status)))
	s.publish(kind, asset)

	return asset, nil
}

// Dispose soft-deletes an asset by moving it to DISPOSED
func (s *AssetService) Dispose(ctx context.Context, id string) (*entities.Asset, error) {
	return s.Update(ctx, id, entities.StatusPatch(entities.AssetStatusDisposed))
}

// Dashboard is the derived view of the asset collection for one filter state
type Dashboard struct {
	Filter                 entities.AssetFilter       `json:"filter"`
	Assets                 []*entities.Asset          `json:"assets"`
	Counts                 map[entities.AssetType]int `json:"counts"`
	Cards                  []entities.TypeCount       `json:"cards"`
	NextRegistrationNumber int                        `json:"nextRegistrationNumber"`
}

// Dashboard recomputes the filtered list and the per-type counts from the current collection
func (s *AssetService) Dashboard(ctx context.Context, filter entities.AssetFilter) (*Dashboard, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	counts := entities.CountActiveByType(assets)
	return &Dashboard{
		Filter:                 filter,
		Assets:                 filter.Apply(assets),
		Counts:                 counts,
		Cards:                  entities.SummaryCards(counts),
		NextRegistrationNumber: len(assets) + 1,
	}, nil
}

func (s *AssetService) publish(kind domain.ChangeKind, asset *entities.Asset) {
	s.publisher.Publish(domain.ChangeEvent{
		Kind:      kind,
		ID:        asset.ID,
		Summary:   asset.InventoryNumber,
		Timestamp: asset.UpdatedAt,
	})
}
