package adapters

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/satriahrh/inventario/domain/entities"
)

// MemoryUserRepository is the process-lifetime UserRepository
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User // id -> user mapping
	order []string                  // ids in insertion order
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]*entities.User),
	}
}

// Create implements repositories.UserRepository
func (m *MemoryUserRepository) Create(ctx context.Context, user *entities.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	if _, exists := m.users[user.ID]; exists {
		return fmt.Errorf("user %s: %w", user.ID, entities.ErrAlreadyExists)
	}

	userCopy := *user
	m.users[user.ID] = &userCopy
	m.order = append(m.order, user.ID)

	return nil
}

// GetByID implements repositories.UserRepository
func (m *MemoryUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if id == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, entities.ErrNotFound)
	}

	userCopy := *user
	return &userCopy, nil
}

// List implements repositories.UserRepository
func (m *MemoryUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*entities.User, 0, len(m.order))
	for _, id := range m.order {
		userCopy := *m.users[id]
		result = append(result, &userCopy)
	}

	return result, nil
}

// Update implements repositories.UserRepository
func (m *MemoryUserRepository) Update(ctx context.Context, user *entities.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}

	if user.ID == "" {
		return errors.New("user ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.users[user.ID]
	if !exists {
		return fmt.Errorf("user %s: %w", user.ID, entities.ErrNotFound)
	}

	user.CreatedAt = existing.CreatedAt // Preserve original creation time

	userCopy := *user
	m.users[user.ID] = &userCopy

	return nil
}

// Modify implements repositories.UserRepository
func (m *MemoryUserRepository) Modify(ctx context.Context, id string, fn func(*entities.User) error) (*entities.User, error) {
	if id == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, exists := m.users[id]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", id, entities.ErrNotFound)
	}

	userCopy := *existing
	if err := fn(&userCopy); err != nil {
		return nil, err
	}
	userCopy.ID = existing.ID
	userCopy.CreatedAt = existing.CreatedAt

	m.users[id] = &userCopy

	result := userCopy
	return &result, nil
}

// Delete implements repositories.UserRepository
func (m *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("user ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[id]; !exists {
		return fmt.Errorf("user %s: %w", id, entities.ErrNotFound)
	}

	delete(m.users, id)
	m.order = slices.DeleteFunc(m.order, func(v string) bool { return v == id })

	return nil
}
