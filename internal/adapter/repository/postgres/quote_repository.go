package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/madoxlx/EGTV3-sub011/internal/core/domain"
)

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) CreateQuote(ctx context.Context, quote *domain.Quote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	queryHeader := `
	INSERT INTO quotes (id, hotel_id, adults, children, nights, total_cost, status, created_at, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.ExecContext(ctx, queryHeader,
		quote.ID, quote.HotelID, quote.Adults, quote.Children, quote.Nights,
		quote.TotalCost, quote.Status, quote.CreatedAt, quote.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert quote header: %w", err)
	}

	queryItem := `
	INSERT INTO quote_items (id, quote_id, room_type_id, rooms, price_per_night)
	VALUES ($1, $2, $3, $4, $5)
	`

	stmt, err := tx.PrepareContext(ctx, queryItem)
	if err != nil {
		return fmt.Errorf("failed to prepare item statement: %w", err)
	}

	defer stmt.Close()

	for _, item := range quote.Items {
		_, err := stmt.ExecContext(ctx, item.ID, item.QuoteID, item.RoomTypeID, item.Rooms, item.PricePerNight)
		if err != nil {
			return fmt.Errorf("failed to insert quote item for room type %s: %w", item.RoomTypeID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, quoteID uuid.UUID) (*domain.Quote, error) {
	query := `
	SELECT id, hotel_id, adults, children, nights, total_cost, status, created_at, expires_at
	FROM quotes
	WHERE id = $1
	`

	var quote domain.Quote

	err := r.db.QueryRowContext(ctx, query, quoteID).Scan(
		&quote.ID,
		&quote.HotelID,
		&quote.Adults,
		&quote.Children,
		&quote.Nights,
		&quote.TotalCost,
		&quote.Status,
		&quote.CreatedAt,
		&quote.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}

		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT id, quote_id, room_type_id, rooms, price_per_night
	FROM quote_items
	WHERE quote_id = $1
	ORDER BY position
	`, quoteID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var item domain.QuoteItem
		if err := rows.Scan(&item.ID, &item.QuoteID, &item.RoomTypeID, &item.Rooms, &item.PricePerNight); err != nil {
			return nil, err
		}

		quote.Items = append(quote.Items, item)
	}

	return &quote, rows.Err()
}

func (r *QuoteRepository) GetExpiredQuotes(ctx context.Context) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM quotes
	WHERE status = 'ACTIVE' AND expires_at < NOW()
	LIMIT 100
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *QuoteRepository) ExpireQuote(ctx context.Context, quoteID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE quotes SET status = 'EXPIRED' WHERE id = $1 AND status = 'ACTIVE'`, quoteID)

	return err
}
