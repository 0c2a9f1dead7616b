package adapters

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/satriahrh/inventario/domain/entities"
)

// MemoryAssetRepository is the process-lifetime AssetRepository.
// Records are kept in insertion order and handed out as copies.
type MemoryAssetRepository struct {
	mu     sync.RWMutex
	assets map[string]*entities.Asset // id -> asset mapping
	order  []string                   // ids in insertion order
}

// NewMemoryAssetRepository creates an empty in-memory asset repository
func NewMemoryAssetRepository() *MemoryAssetRepository {
	return &MemoryAssetRepository{
		assets: make(map[string]*entities.Asset),
	}
}

// Create implements repositories.AssetRepository
func (m *MemoryAssetRepository) Create(ctx context.Context, asset *entities.Asset) error {
	if asset == nil {
		return errors.New("asset cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Generate ID if not provided
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}

	if _, exists := m.assets[asset.ID]; exists {
		return fmt.Errorf("asset %s: %w", asset.ID, entities.ErrAlreadyExists)
	}

	assetCopy := *asset
	m.assets[asset.ID] = &assetCopy
	m.order = append(m.order, asset.ID)

	return nil
}

// GetByID implements repositories.AssetRepository
func (m *MemoryAssetRepository) GetByID(ctx context.Context, id string) (*entities.Asset, error) {
	if id == "" {
		return nil, errors.New("asset ID cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	asset, exists := m.assets[id]
	if !exists {
		return nil, fmt.Errorf("asset %s: %w", id, entities.ErrNotFound)
	}

	// Return a copy to prevent external modifications
	assetCopy := *asset
	return &assetCopy, nil
}

// List implements repositories.AssetRepository
func (m *MemoryAssetRepository) List(ctx context.Context) ([]*entities.Asset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*entities.Asset, 0, len(m.order))
	for _, id := range m.order {
		assetCopy := *m.assets[id]
		result = append(result, &assetCopy)
	}

	return result, nil
}

// Update implements repositories.AssetRepository
func (m *MemoryAssetRepository) Update(ctx context.Context, asset *entities.Asset) error {
	if asset == nil {
		return errors.New("asset cannot be nil")
	}

	if asset.ID == "" {
		return errors.New("asset ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.assets[asset.ID]
	if !exists {
		return fmt.Errorf("asset %s: %w", asset.ID, entities.ErrNotFound)
	}

	// Preserve original creation data
	asset.CreatedAt = existing.CreatedAt
	asset.CreatedBy = existing.CreatedBy

	assetCopy := *asset
	m.assets[asset.ID] = &assetCopy

	return nil
}

// Modify implements repositories.AssetRepository
func (m *MemoryAssetRepository) Modify(ctx context.Context, id string, fn func(*entities.Asset) error) (*entities.Asset, error) {
	if id == "" {
		return nil, errors.New("asset ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.assets[id]
	if !exists {
		return nil, fmt.Errorf("asset %s: %w", id, entities.ErrNotFound)
	}

	assetCopy := *existing
	if err := fn(&assetCopy); err != nil {
		return nil, err
	}

	// Identity and creation data are not fn's to change
	assetCopy.ID = existing.ID
	assetCopy.CreatedAt = existing.CreatedAt
	assetCopy.CreatedBy = existing.CreatedBy

	m.assets[id] = &assetCopy

	result := assetCopy
	return &result, nil
}
