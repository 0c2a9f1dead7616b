package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/satriahrh/inventario/domain"
	"github.com/satriahrh/inventario/domain/entities"
)

// Option tunes a service at construction time
type Option func(*base)

// WithClock replaces time.Now as the source of record timestamps
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithIDGenerator replaces the UUID generator used for new records
func WithIDGenerator(newID func() string) Option {
	return func(b *base) { b.newID = newID }
}

// base carries the collaborators shared by every service
type base struct {
	now   func() time.Time
	newID func() string
}

func newBase(opts []Option) base {
	b := base{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.ChangeEvent) {}

// wrapMutation adds context to storage failures. Validation and not-found
// errors are returned as is so callers can match them.
func wrapMutation(op string, err error) error {
	var validation entities.ValidationErrors
	if errors.As(err, &validation) || errors.Is(err, entities.ErrNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
