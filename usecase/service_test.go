package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/satriahrh/inventario/adapters"
	"github.com/satriahrh/inventario/domain"
	"github.com/satriahrh/inventario/domain/entities"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (p *recordingPublisher) Publish(e domain.ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) kinds() []domain.ChangeKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ChangeKind, len(p.events))
	for i, e := range p.events {
		out[i] = e.Kind
	}
	return out
}

// stepClock returns a clock advancing one minute per call
func stepClock() func() time.Time {
	t := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func ptr[T any](v T) *T { return &v }

func newAssetService(t *testing.T) (*AssetService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewAssetService(adapters.NewMemoryAssetRepository(), pub, "sistema", zap.NewNop(),
		WithClock(stepClock()), WithIDGenerator(sequentialIDs("asset")))
	return svc, pub
}

func newUserService(t *testing.T) (*UserService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewUserService(adapters.NewMemoryUserRepository(), pub, zap.NewNop(),
		WithClock(stepClock()), WithIDGenerator(sequentialIDs("user")))
	return svc, pub
}

func computerPatch() entities.AssetPatch {
	return entities.AssetPatch{
		InventoryNumber: ptr("INV-1"),
		SerialNumber:    ptr("SN-1"),
		Type:            ptr(entities.AssetTypeComputer),
		Status:          ptr(entities.AssetStatusAvailable),
	}
}

func TestAssetService_CreateDisposeScenario(t *testing.T) {
	ctx := context.Background()
	svc, pub := newAssetService(t)

	asset, err := svc.Create(ctx, computerPatch())
	require.NoError(t, err)
	assert.Equal(t, "asset-1", asset.ID)
	assert.Equal(t, asset.CreatedAt, asset.UpdatedAt)
	assert.Equal(t, "sistema", asset.CreatedBy)

	dash, err := svc.Dashboard(ctx, entities.AssetFilter{Type: entities.TypeFilterAll})
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Counts[entities.AssetTypeComputer])
	require.Len(t, dash.Assets, 1)
	assert.Equal(t, asset.ID, dash.Assets[0].ID)
	assert.Equal(t, 2, dash.NextRegistrationNumber)

	disposed, err := svc.Update(ctx, asset.ID, entities.StatusPatch(entities.AssetStatusDisposed))
	require.NoError(t, err)
	assert.Equal(t, entities.AssetStatusDisposed, disposed.Status)
	assert.True(t, disposed.UpdatedAt.After(disposed.CreatedAt))
	assert.Equal(t, asset.CreatedAt, disposed.CreatedAt)

	dash, err = svc.Dashboard(ctx, entities.AssetFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, dash.Counts[entities.AssetTypeComputer])
	assert.Empty(t, dash.Assets)

	dash, err = svc.Dashboard(ctx, entities.AssetFilter{ShowDisposed: true})
	require.NoError(t, err)
	require.Len(t, dash.Assets, 1)

	assert.Equal(t, []domain.ChangeKind{domain.AssetCreated, domain.AssetDisposed}, pub.kinds())
}

func TestAssetService_CreateRejectsMissingFields(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		clear func(p *entities.AssetPatch)
		field string
	}{
		{"inventory number", func(p *entities.AssetPatch) { p.InventoryNumber = nil }, "inventoryNumber"},
		{"serial number", func(p *entities.AssetPatch) { p.SerialNumber = ptr("") }, "serialNumber"},
		{"type", func(p *entities.AssetPatch) { p.Type = nil }, "type"},
		{"status", func(p *entities.AssetPatch) { p.Status = nil }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub := newAssetService(t)
			patch := computerPatch()
			tt.clear(&patch)

			_, err := svc.Create(ctx, patch)
			var verrs entities.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.True(t, verrs.Has(tt.field))

			all, err := svc.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
			assert.Empty(t, pub.kinds())
		})
	}
}

func TestAssetService_UpdateMergesAndKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	svc, pub := newAssetService(t)

	patch := computerPatch()
	patch.Model = ptr("ThinkPad T14")
	patch.Observations = ptr("nueva")
	patch.CreatedBy = ptr("juan")
	asset, err := svc.Create(ctx, patch)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, asset.ID, entities.AssetPatch{Location: ptr("Oficina 3")})
	require.NoError(t, err)
	assert.Equal(t, "Oficina 3", updated.Location)
	assert.Equal(t, "ThinkPad T14", updated.Model)
	assert.Equal(t, "nueva", updated.Observations)
	assert.Equal(t, "juan", updated.CreatedBy)

	_, err = svc.Update(ctx, asset.ID, entities.AssetPatch{InventoryNumber: ptr("")})
	var verrs entities.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	stored, err := svc.Get(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", stored.InventoryNumber)

	assert.Equal(t, []domain.ChangeKind{domain.AssetCreated, domain.AssetUpdated}, pub.kinds())
}

func TestAssetService_DisposeIsReversible(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAssetService(t)

	asset, err := svc.Create(ctx, computerPatch())
	require.NoError(t, err)

	disposed, err := svc.Dispose(ctx, asset.ID)
	require.NoError(t, err)
	assert.True(t, disposed.IsDisposed())
	assert.Equal(t, asset.InventoryNumber, disposed.InventoryNumber)

	restored, err := svc.Update(ctx, asset.ID, entities.StatusPatch(entities.AssetStatusInUse))
	require.NoError(t, err)
	assert.False(t, restored.IsDisposed())

	dash, err := svc.Dashboard(ctx, entities.AssetFilter{})
	require.NoError(t, err)
	assert.Len(t, dash.Assets, 1)
}

func TestAssetService_UnknownID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAssetService(t)

	_, err := svc.Update(ctx, "nope", entities.AssetPatch{})
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = svc.Dispose(ctx, "nope")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func anaPatch() entities.UserPatch {
	return entities.UserPatch{
		Name:  ptr("Ana"),
		Email: ptr("ana@x.com"),
		Role:  ptr(entities.UserRoleUser),
		Area:  ptr("IT"),
	}
}

func TestUserService_Scenario(t *testing.T) {
	ctx := context.Background()
	svc, pub := newUserService(t)

	user, err := svc.Create(ctx, anaPatch())
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	toggled, err := svc.ToggleActive(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	removed, err := svc.Remove(ctx, user.ID, Confirmed(false))
	require.NoError(t, err)
	assert.False(t, removed)
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	var asked string
	removed, err = svc.Remove(ctx, user.ID, ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return true
	}))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, DeleteUserPrompt, asked)

	_, err = svc.Get(ctx, user.ID)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	assert.Equal(t, []domain.ChangeKind{domain.UserCreated, domain.UserToggled, domain.UserRemoved}, pub.kinds())
}

func TestUserService_ToggleTwiceRestoresUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	user, err := svc.Create(ctx, anaPatch())
	require.NoError(t, err)

	_, err = svc.ToggleActive(ctx, user.ID)
	require.NoError(t, err)
	again, err := svc.ToggleActive(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.Active, again.Active)
	assert.Equal(t, user.Name, again.Name)
	assert.Equal(t, user.Email, again.Email)
	assert.Equal(t, user.Role, again.Role)
	assert.Equal(t, user.Area, again.Area)
	assert.Equal(t, user.CreatedAt, again.CreatedAt)
	assert.True(t, again.UpdatedAt.After(user.UpdatedAt))
}

func TestUserService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	patch := anaPatch()
	patch.Email = ptr("not-an-email")
	_, err := svc.Create(ctx, patch)

	var verrs entities.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("email"))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserService_UpdateKeepsActiveFlag(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	user, err := svc.Create(ctx, anaPatch())
	require.NoError(t, err)
	_, err = svc.ToggleActive(ctx, user.ID)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, user.ID, entities.UserPatch{Area: ptr("Finanzas")})
	require.NoError(t, err)
	assert.Equal(t, "Finanzas", updated.Area)
	assert.Equal(t, "Ana", updated.Name)
	assert.False(t, updated.Active)
}

func TestUserService_UnknownID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	_, err := svc.ToggleActive(ctx, "ghost")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	prompted := false
	_, err = svc.Remove(ctx, "ghost", ConfirmFunc(func(string) bool {
		prompted = true
		return true
	}))
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.False(t, prompted)
}

func TestUserService_Seed(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", user.Name)
	assert.Equal(t, entities.UserRoleAdmin, user.Role)
	assert.True(t, user.Active)
}

// slowUserRepository widens the window between reading and writing a user
type slowUserRepository struct {
	*adapters.MemoryUserRepository
}

func (r slowUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := r.MemoryUserRepository.GetByID(ctx, id)
	time.Sleep(5 * time.Millisecond)
	return user, err
}

func (r slowUserRepository) Modify(ctx context.Context, id string, fn func(*entities.User) error) (*entities.User, error) {
	return r.MemoryUserRepository.Modify(ctx, id, func(u *entities.User) error {
		time.Sleep(5 * time.Millisecond)
		return fn(u)
	})
}

type slowAssetRepository struct {
	*adapters.MemoryAssetRepository
}

func (r slowAssetRepository) GetByID(ctx context.Context, id string) (*entities.Asset, error) {
	asset, err := r.MemoryAssetRepository.GetByID(ctx, id)
	time.Sleep(5 * time.Millisecond)
	return asset, err
}

func (r slowAssetRepository) Modify(ctx context.Context, id string, fn func(*entities.Asset) error) (*entities.Asset, error) {
	return r.MemoryAssetRepository.Modify(ctx, id, func(a *entities.Asset) error {
		time.Sleep(5 * time.Millisecond)
		return fn(a)
	})
}

func runConcurrently(fns ...func() error) []error {
	var wg sync.WaitGroup
	errs := make([]error, len(fns))
	for i, fn := range fns {
		wg.Add(1)
		go func(i int, fn func() error) {
			defer wg.Done()
			errs[i] = fn()
		}(i, fn)
	}
	wg.Wait()
	return errs
}

func TestUserService_ConcurrentMutationsAreNotLost(t *testing.T) {
	ctx := context.Background()
	fixed := func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	svc := NewUserService(slowUserRepository{adapters.NewMemoryUserRepository()}, &recordingPublisher{}, zap.NewNop(),
		WithClock(fixed), WithIDGenerator(sequentialIDs("user")))

	user, err := svc.Create(ctx, anaPatch())
	require.NoError(t, err)
	require.True(t, user.Active)

	toggle := func() error {
		_, err := svc.ToggleActive(ctx, user.ID)
		return err
	}

	for _, err := range runConcurrently(toggle, toggle) {
		require.NoError(t, err)
	}
	stored, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active, "two concurrent toggles must restore the flag")

	errs := runConcurrently(toggle, func() error {
		_, err := svc.Update(ctx, user.ID, entities.UserPatch{Area: ptr("Finanzas")})
		return err
	})
	for _, err := range errs {
		require.NoError(t, err)
	}
	stored, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.Equal(t, "Finanzas", stored.Area)
	assert.Equal(t, "Ana", stored.Name)
}

func TestAssetService_ConcurrentDisposeAndUpdate(t *testing.T) {
	ctx := context.Background()
	fixed := func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	pub := &recordingPublisher{}
	svc := NewAssetService(slowAssetRepository{adapters.NewMemoryAssetRepository()}, pub, "sistema", zap.NewNop(),
		WithClock(fixed), WithIDGenerator(sequentialIDs("asset")))

	asset, err := svc.Create(ctx, computerPatch())
	require.NoError(t, err)

	errs := runConcurrently(
		func() error {
			_, err := svc.Dispose(ctx, asset.ID)
			return err
		},
		func() error {
			_, err := svc.Update(ctx, asset.ID, entities.AssetPatch{Observations: ptr("pantalla rota")})
			return err
		},
	)
	for _, err := range errs {
		require.NoError(t, err)
	}

	stored, err := svc.Get(ctx, asset.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDisposed())
	assert.Equal(t, "pantalla rota", stored.Observations)
	assert.Contains(t, pub.kinds(), domain.AssetDisposed)
}
