package domain

type RoomAllocation struct {
	RoomType      RoomType `json:"room_type"`
	RoomsNeeded   int      `json:"rooms_needed"`
	TotalCapacity int      `json:"total_capacity"`
	TotalCost     int64    `json:"total_cost"`
}

// AllocationResult is the room mix chosen for a party. Costs are in minor
// currency units for the whole stay.
type AllocationResult struct {
	Allocations   []RoomAllocation `json:"allocations"`
	TotalCost     int64            `json:"total_cost"`
	TotalCapacity int              `json:"total_capacity"`
	CostPerPerson float64          `json:"cost_per_person"`
	IsValid       bool             `json:"is_valid"`
}

func EmptyAllocation() *AllocationResult {
	return &AllocationResult{
		Allocations: []RoomAllocation{},
	}
}
