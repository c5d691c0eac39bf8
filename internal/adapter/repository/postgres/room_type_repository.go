package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/madoxlx/EGTV3-sub011/internal/core/domain"
)

type RoomTypeRepository struct {
	db *sql.DB
}

func NewRoomTypeRepository(db *sql.DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

const roomTypeColumns = `id, hotel_id, name, capacity, price_per_night, available,
	flex_base_capacity, flex_seats, flex_requires_adult_base, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoomType(row rowScanner) (*domain.RoomType, error) {
	var rt domain.RoomType
	var flexBase, flexSeats sql.NullInt32
	var flexAdultBase sql.NullBool

	err := row.Scan(
		&rt.ID,
		&rt.HotelID,
		&rt.Name,
		&rt.Capacity,
		&rt.PricePerNight,
		&rt.Available,
		&flexBase,
		&flexSeats,
		&flexAdultBase,
		&rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if flexSeats.Valid && flexSeats.Int32 > 0 {
		base := rt.Capacity
		if flexBase.Valid {
			base = int(flexBase.Int32)
		}

		rt.Occupancy = &domain.OccupancyPolicy{
			BaseCapacity:          base,
			FlexSeats:             int(flexSeats.Int32),
			FlexRequiresAdultBase: flexAdultBase.Bool,
		}
	}

	return &rt, nil
}

// ListByHotel returns the hotel's room types in a stable order so that
// allocations computed from them are reproducible.
func (r *RoomTypeRepository) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]domain.RoomType, error) {
	query := `
	SELECT ` + roomTypeColumns + `
	FROM room_types
	WHERE hotel_id = $1
	ORDER BY sort_order, name, id
	`

	rows, err := r.db.QueryContext(ctx, query, hotelID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	roomTypes := []domain.RoomType{}
	for rows.Next() {
		rt, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}

		roomTypes = append(roomTypes, *rt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roomTypes, nil
}

func (r *RoomTypeRepository) GetByID(ctx context.Context, roomTypeID uuid.UUID) (*domain.RoomType, error) {
	query := `
	SELECT ` + roomTypeColumns + `
	FROM room_types
	WHERE id = $1
	`

	rt, err := scanRoomType(r.db.QueryRowContext(ctx, query, roomTypeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomTypeNotFound
		}

		return nil, err
	}

	return rt, nil
}

func (r *RoomTypeRepository) UpdateAvailable(ctx context.Context, roomTypeID uuid.UUID, available int) error {
	query := `
	UPDATE room_types
	SET available = $1,
		updated_at = NOW()
	WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, available, roomTypeID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("update room type %s: %w", roomTypeID, domain.ErrRoomTypeNotFound)
	}

	return nil
}
