package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/inventario/domain"
	"github.com/satriahrh/inventario/domain/entities"
	"github.com/satriahrh/inventario/domain/repositories"
)

// DeleteUserPrompt is the question shown before a user is removed
const DeleteUserPrompt = "¿Está seguro de que desea eliminar este usuario?"

// Confirmer answers a yes/no prompt gating a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed is a Confirmer that always answers the same way
type Confirmed bool

// Confirm implements Confirmer
func (c Confirmed) Confirm(string) bool { return bool(c) }

// UserService applies create/update/toggle/remove semantics to the user collection
type UserService struct {
	base
	repo      repositories.UserRepository
	publisher repositories.EventPublisher
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	repo repositories.UserRepository,
	publisher repositories.EventPublisher,
	logger *zap.Logger,
	opts ...Option,
) *UserService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &UserService{
		base:      newBase(opts),
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create validates the patch and stores a new active user
func (s *UserService) Create(ctx context.Context, patch entities.UserPatch) (*entities.User, error) {
	user := entities.NewUser(patch)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	user.ID = s.newID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created",
		zap.String("userID", user.ID),
		zap.String("role", string(user.Role)))
	s.publish(domain.UserCreated, user)

	return user, nil
}

// Get returns a single user
func (s *UserService) Get(ctx context.Context, id string) (*entities.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every user in insertion order
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	return s.repo.List(ctx)
}

// Update merges the present patch fields onto the stored user
func (s *UserService) Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	user, err := s.repo.Modify(ctx, id, func(u *entities.User) error {
		patch.ApplyTo(u)
		if err := u.Validate(); err != nil {
			return err
		}
		u.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, wrapMutation("update user", err)
	}

	s.logger.Info("User updated", zap.String("userID", user.ID))
	s.publish(domain.UserUpdated, user)

	return user, nil
}

// ToggleActive flips the active flag and nothing else
func (s *UserService) ToggleActive(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.repo.Modify(ctx, id, func(u *entities.User) error {
		u.Active = !u.Active
		u.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, wrapMutation("toggle user", err)
	}

	s.logger.Info("User active flag toggled",
		zap.String("userID", user.ID),
		zap.Bool("active", user.Active))
	s.publish(domain.UserToggled, user)

	return user, nil
}

// Remove permanently deletes a user once confirm agrees. A declined prompt
// leaves the collection unchanged and reports false without an error.
func (s *UserService) Remove(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	if confirm == nil || !confirm.Confirm(DeleteUserPrompt) {
		s.logger.Info("User removal declined", zap.String("userID", id))
		return false, nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("failed to remove user: %w", err)
	}

	s.logger.Info("User removed", zap.String("userID", id))
	s.publisher.Publish(domain.ChangeEvent{
		Kind:      domain.UserRemoved,
		ID:        id,
		Summary:   user.Name,
		Timestamp: s.now(),
	})

	return true, nil
}

// Seed stores the demo administrator the application ships with
func (s *UserService) Seed(ctx context.Context) (*entities.User, error) {
	name, email, area := "Juan Pérez", "juan@empresa.com", "IT"
	role := entities.UserRoleAdmin
	return s.Create(ctx, entities.UserPatch{
		Name:  &name,
		Email: &email,
		Role:  &role,
		Area:  &area,
	})
}

func (s *UserService) publish(kind domain.ChangeKind, user *entities.User) {
	s.publisher.Publish(domain.ChangeEvent{
		Kind:      kind,
		ID:        user.ID,
		Summary:   user.Name,
		Timestamp: user.UpdatedAt,
	})
}
