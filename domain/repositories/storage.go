package repositories

import (
	"context"

	"github.com/satriahrh/inventario/domain"
	"github.com/satriahrh/inventario/domain/entities"
)

// AssetRepository defines data access methods for assets.
// Assets are never hard-deleted, so there is no Delete.
type AssetRepository interface {
	Create(ctx context.Context, asset *entities.Asset) error
	GetByID(ctx context.Context, id string) (*entities.Asset, error)
	// List returns every asset in insertion order
	List(ctx context.Context) ([]*entities.Asset, error)
	Update(ctx context.Context, asset *entities.Asset) error
	// Modify runs fn on a copy of the stored asset under the write lock and
	// stores the result unless fn fails. Read-modify-write callers use it so
	// concurrent mutations are never lost.
	Modify(ctx context.Context, id string, fn func(*entities.Asset) error) (*entities.Asset, error)
}

// UserRepository defines data access methods for users
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	// List returns every user in insertion order
	List(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// Modify runs fn on a copy of the stored user under the write lock
	Modify(ctx context.Context, id string, fn func(*entities.User) error) (*entities.User, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher fans out inventory change events
type EventPublisher interface {
	Publish(event domain.ChangeEvent)
}
