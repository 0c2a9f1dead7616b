package domain

import "time"

// ChangeKind names a mutation of the inventory
type ChangeKind string

const (
	AssetCreated  ChangeKind = "asset.created"
	AssetUpdated  ChangeKind = "asset.updated"
	AssetDisposed ChangeKind = "asset.disposed"
	UserCreated   ChangeKind = "user.created"
	UserUpdated   ChangeKind = "user.updated"
	UserToggled   ChangeKind = "user.toggled"
	UserRemoved   ChangeKind = "user.removed"
)

// ChangeEvent is published after every successful store mutation so that
// open dashboards can recompute their views
type ChangeEvent struct {
	Kind      ChangeKind `json:"kind"`
	ID        string     `json:"id"`
	Summary   string     `json:"summary,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
