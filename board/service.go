// Package board owns the business rules of the board snapshot: seeding a
// default state on first load, whole-snapshot replacement and cascading
// column deletion. Persistence is reached only through the injected Store.
//
// Writes replace the snapshot wholesale with no version tag, so two
// concurrent writers race and the later write wins in full. That is a
// known property of the snapshot model, not something this layer guards
// against.
package board

import (
	"context"
	"errors"
	"fmt"

	"threadwell-api/domain"
)

// Store is durable get/set of one snapshot under one fixed key.
type Store interface {
	// Get returns the last persisted snapshot. An uninitialized store
	// reports ok=false with a nil error; that case is handled here, not
	// in the adapter.
	Get(ctx context.Context) (state *domain.BoardState, ok bool, err error)
	// Set persists the snapshot, replacing the prior one atomically. It
	// is synchronous from the caller's perspective and fails loudly.
	Set(ctx context.Context, state *domain.BoardState) error
	Close() error
}

var (
	// ErrStorageUnavailable wraps read failures of the persistence backend.
	ErrStorageUnavailable = errors.New("board storage unavailable")
	// ErrStorageWriteFailed wraps write failures; the prior snapshot
	// remains intact when it is returned.
	ErrStorageWriteFailed = errors.New("board storage write failed")
	// ErrMalformedState rejects replacement snapshots missing a required
	// top-level collection. No write is attempted.
	ErrMalformedState = errors.New("malformed board state")
)

// Service applies board business rules over an injected snapshot store.
type Service struct {
	store Store
}

// NewService creates a Service owning the given store handle.
func NewService(store Store) *Service {
	if store == nil {
		panic("board.NewService: store is nil")
	}
	return &Service{store: store}
}

// Load returns the current snapshot. A store that has never been written
// is seeded with the default board, which is persisted before it is
// returned, so Load never fails for "not found".
func (s *Service) Load(ctx context.Context) (*domain.BoardState, error) {
	state, ok, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		seeded := DefaultState()
		if err := s.store.Set(ctx, seeded); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
		}
		return seeded, nil
	}
	return state, nil
}

// Replace persists the given snapshot as the new canonical one. Only the
// structural shape is checked; referential invariants are the caller's
// responsibility, matching the transport contract.
func (s *Service) Replace(ctx context.Context, state *domain.BoardState) error {
	if state == nil || state.Lists == nil || state.ListOrder == nil || state.Cards == nil {
		return ErrMalformedState
	}
	if err := s.store.Set(ctx, state); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}
	return nil
}

// DeleteColumn removes the named list and every card it owns in one
// committed write. Deleting a list that does not exist is a successful
// no-op; nothing is written in that case. Permanence is enforced by the
// caller, not here.
func (s *Service) DeleteColumn(ctx context.Context, listID string) error {
	state, err := s.Load(ctx)
	if err != nil {
		return err
	}
	list, ok := state.Lists[listID]
	if !ok {
		return nil
	}

	next := state.Clone()
	delete(next.Lists, listID)
	order := next.ListOrder[:0]
	for _, id := range next.ListOrder {
		if id != listID {
			order = append(order, id)
		}
	}
	next.ListOrder = order
	for _, cardID := range list.CardIDs {
		delete(next.Cards, cardID)
	}

	return s.Replace(ctx, next)
}

// Close releases the underlying store handle.
func (s *Service) Close() error {
	return s.store.Close()
}
