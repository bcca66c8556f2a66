/*
Package store defines persistence for per-user timesheet state.

PURPOSE:
  The engine works on AppState snapshots; the store's job is to hand a
  whole snapshot out and take a whole snapshot back. There is no
  per-entry write path: a save replaces the user's stored calendar
  atomically, which matches the copy-on-write editing model and keeps
  the storage contract to two verbs.

IMPLEMENTATIONS:
  - store/sqlite: production storage, one normalized table per concern
  - store/memory: map-backed, for tests and the CLI

SEE ALSO:
  - statefile: the import/export representation of the same snapshot
*/
package store

import (
	"context"
	"errors"

	"github.com/warp/timesheet-engine/engine"
)

// ErrUserNotFound is returned by LoadState for an unknown user.
var ErrUserNotFound = errors.New("user not found")

// Store persists one AppState snapshot per user.
type Store interface {
	// LoadState returns the user's stored snapshot.
	LoadState(ctx context.Context, user string) (engine.AppState, error)

	// SaveState replaces the user's snapshot atomically. A first save
	// creates the user.
	SaveState(ctx context.Context, user string, state engine.AppState) error

	// ListUsers returns every known user, sorted.
	ListUsers(ctx context.Context) ([]string, error)
}
