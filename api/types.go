package api

import (
	"context"

	"threadwell-api/domain"
)

// BoardService abstracts the board state service for handlers.
type BoardService interface {
	Load(ctx context.Context) (*domain.BoardState, error)
	Replace(ctx context.Context, state *domain.BoardState) error
	DeleteColumn(ctx context.Context, listID string) error
}
