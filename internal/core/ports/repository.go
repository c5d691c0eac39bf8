package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/madoxlx/EGTV3-sub011/internal/core/domain"
)

type RoomTypeRepository interface {
	ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]domain.RoomType, error)
	GetByID(ctx context.Context, roomTypeID uuid.UUID) (*domain.RoomType, error)
	UpdateAvailable(ctx context.Context, roomTypeID uuid.UUID, available int) error
}

type QuoteRepository interface {
	CreateQuote(ctx context.Context, quote *domain.Quote) error
	GetByID(ctx context.Context, quoteID uuid.UUID) (*domain.Quote, error)
	GetExpiredQuotes(ctx context.Context) ([]uuid.UUID, error)
	ExpireQuote(ctx context.Context, quoteID uuid.UUID) error
}
