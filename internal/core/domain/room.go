package domain

import (
	"time"

	"github.com/google/uuid"
)

// OccupancyPolicy lets a room hold more than its base capacity when the
// occupant mix allows it. A triple room that takes a fourth guest only when
// three adults are already in it is {BaseCapacity: 3, FlexSeats: 1, FlexRequiresAdultBase: true}.
type OccupancyPolicy struct {
	BaseCapacity          int  `json:"base_capacity"`
	FlexSeats             int  `json:"flex_seats"`
	FlexRequiresAdultBase bool `json:"flex_requires_adult_base"`
}

type RoomType struct {
	ID            uuid.UUID        `json:"id"`
	HotelID       uuid.UUID        `json:"hotel_id"`
	Name          string           `json:"name"`
	Capacity      int              `json:"capacity"`
	PricePerNight int64            `json:"price_per_night"`
	Available     int              `json:"available"`
	Occupancy     *OccupancyPolicy `json:"occupancy,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (r *RoomType) IsFlex() bool {
	return r.Occupancy != nil
}

// BaseCapacity is the number of occupants the room takes without flex seats.
func (r *RoomType) BaseCapacity() int {
	if r.Occupancy != nil {
		return r.Occupancy.BaseCapacity
	}

	return r.Capacity
}

type Party struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

func (p Party) TotalPeople() int {
	return p.Adults + p.Children
}
