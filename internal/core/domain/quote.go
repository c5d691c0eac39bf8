package domain

import (
	"time"

	"github.com/google/uuid"
)

type QuoteStatus string

const (
	QuoteActive  QuoteStatus = "ACTIVE"
	QuoteExpired QuoteStatus = "EXPIRED"
)

type Quote struct {
	ID        uuid.UUID
	HotelID   uuid.UUID
	Adults    int
	Children  int
	Nights    int
	TotalCost int64
	Status    QuoteStatus
	CreatedAt time.Time
	ExpiresAt time.Time
	Items     []QuoteItem
}

type QuoteItem struct {
	ID            uuid.UUID
	QuoteID       uuid.UUID
	RoomTypeID    uuid.UUID
	Rooms         int
	PricePerNight int64
}

func (q *Quote) IsExpired(now time.Time) bool {
	return q.Status == QuoteExpired || now.After(q.ExpiresAt)
}
