// Package allocation picks the cheapest mix of hotel rooms that can seat a
// travelling party. It is pure: no I/O, no shared state, safe to call from
// any number of goroutines.
package allocation

import (
	"fmt"
	"slices"

	"github.com/madoxlx/EGTV3-sub011/internal/core/domain"
)

// MaxPartySize caps the travellers a single request may allocate rooms for.
// Larger groups are split across bookings.
const MaxPartySize = 30

// headroom is added to the capacity-minimal room count of each type so that
// pricier-per-seat but cheaper-overall mixes and flex rooms are still reached.
const headroom = 2

// Allocate returns the lowest-cost combination of roomTypes that seats the
// whole party for the given number of nights. When no combination fits, the
// result has IsValid false and no allocations; that is not an error.
func Allocate(party domain.Party, roomTypes []domain.RoomType, nights int) (*domain.AllocationResult, error) {
	if err := validate(party, roomTypes, nights); err != nil {
		return nil, err
	}

	if len(roomTypes) == 0 {
		return domain.EmptyAllocation(), nil
	}

	var best []int
	var bestCost int64

	enumerate(party, roomTypes, func(counts []int) {
		cost := combinationCost(roomTypes, counts, nights)
		if best == nil || cost < bestCost {
			best = slices.Clone(counts)
			bestCost = cost
		}
	})

	if best == nil {
		return domain.EmptyAllocation(), nil
	}

	return buildResult(party, roomTypes, best, nights), nil
}

// Rank returns up to limit feasible combinations ordered by total cost.
// Equal-cost combinations keep their enumeration order, so Rank(...)[0]
// always matches Allocate.
func Rank(party domain.Party, roomTypes []domain.RoomType, nights, limit int) ([]domain.AllocationResult, error) {
	if err := validate(party, roomTypes, nights); err != nil {
		return nil, err
	}

	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidInput)
	}

	var top []candidate

	enumerate(party, roomTypes, func(counts []int) {
		top = keepCheapest(top, counts, combinationCost(roomTypes, counts, nights), limit)
	})

	results := make([]domain.AllocationResult, 0, len(top))
	for _, c := range top {
		results = append(results, *buildResult(party, roomTypes, c.counts, nights))
	}

	return results, nil
}

type candidate struct {
	counts []int
	cost   int64
}

// keepCheapest inserts a combination into top, which is sorted by cost and
// holds at most limit entries. A new entry goes after every entry of equal
// cost, so earlier combinations win ties.
func keepCheapest(top []candidate, counts []int, cost int64, limit int) []candidate {
	if len(top) == limit && cost >= top[len(top)-1].cost {
		return top
	}

	pos := len(top)
	for pos > 0 && top[pos-1].cost > cost {
		pos--
	}

	top = slices.Insert(top, pos, candidate{counts: slices.Clone(counts), cost: cost})
	if len(top) > limit {
		top = top[:limit]
	}

	return top
}

// CanAccommodate reports whether the rooms in allocations, filled in order,
// seat every adult and child of the party.
func CanAccommodate(party domain.Party, allocations []domain.RoomAllocation) bool {
	roomTypes := make([]domain.RoomType, len(allocations))
	counts := make([]int, len(allocations))

	for i, a := range allocations {
		roomTypes[i] = a.RoomType
		counts[i] = a.RoomsNeeded
	}

	return accommodates(party, roomTypes, counts)
}

// ValidateRequest rejects party sizes and stay lengths no search can serve.
func ValidateRequest(party domain.Party, nights int) error {
	if party.Adults < 0 {
		return fmt.Errorf("%w: adults must not be negative", domain.ErrInvalidInput)
	}

	if party.Children < 0 {
		return fmt.Errorf("%w: children must not be negative", domain.ErrInvalidInput)
	}

	if party.TotalPeople() == 0 {
		return fmt.Errorf("%w: party must have at least one traveller", domain.ErrInvalidInput)
	}

	if party.TotalPeople() > MaxPartySize {
		return fmt.Errorf("%w: party must not exceed %d travellers", domain.ErrInvalidInput, MaxPartySize)
	}

	if nights < 1 {
		return fmt.Errorf("%w: nights must be positive", domain.ErrInvalidInput)
	}

	return nil
}

func validate(party domain.Party, roomTypes []domain.RoomType, nights int) error {
	if err := ValidateRequest(party, nights); err != nil {
		return err
	}

	for _, rt := range roomTypes {
		switch {
		case rt.Capacity < 1:
			return fmt.Errorf("%w: room type %q capacity must be positive", domain.ErrInvalidInput, rt.Name)
		case rt.PricePerNight < 0:
			return fmt.Errorf("%w: room type %q price must not be negative", domain.ErrInvalidInput, rt.Name)
		case rt.Available < 0:
			return fmt.Errorf("%w: room type %q availability must not be negative", domain.ErrInvalidInput, rt.Name)
		}

		if p := rt.Occupancy; p != nil && (p.BaseCapacity < 1 || p.FlexSeats < 1) {
			return fmt.Errorf("%w: room type %q occupancy policy is malformed", domain.ErrInvalidInput, rt.Name)
		}
	}

	return nil
}

// maxRooms bounds how many rooms of one type a combination may use.
func maxRooms(rt *domain.RoomType, totalPeople int) int {
	needed := (totalPeople+rt.Capacity-1)/rt.Capacity + headroom

	return min(rt.Available, needed)
}

// enumerate calls visit with every feasible, non-empty combination of room
// counts. The first room type varies slowest. counts is reused between
// calls; visit must copy it to keep it.
func enumerate(party domain.Party, roomTypes []domain.RoomType, visit func(counts []int)) {
	total := party.TotalPeople()
	limits := make([]int, len(roomTypes))

	for i := range roomTypes {
		limits[i] = maxRooms(&roomTypes[i], total)
	}

	counts := make([]int, len(roomTypes))

	var walk func(idx, rooms int)
	walk = func(idx, rooms int) {
		if idx == len(roomTypes) {
			if rooms > 0 && accommodates(party, roomTypes, counts) {
				visit(counts)
			}

			return
		}

		for n := 0; n <= limits[idx]; n++ {
			counts[idx] = n
			walk(idx+1, rooms+n)
		}

		counts[idx] = 0
	}

	walk(0, 0)
}

func accommodates(party domain.Party, roomTypes []domain.RoomType, counts []int) bool {
	adults, children := party.Adults, party.Children

	for i := range roomTypes {
		for n := 0; n < counts[i]; n++ {
			if adults == 0 && children == 0 {
				return true
			}

			a, c := seatRoom(&roomTypes[i], adults, children)
			adults -= a
			children -= c
		}
	}

	return adults == 0 && children == 0
}

// seatRoom fills a single room from the remaining travellers, adults first,
// and returns how many adults and children it took.
func seatRoom(rt *domain.RoomType, adults, children int) (int, int) {
	if !rt.IsFlex() {
		a := min(rt.Capacity, adults)

		return a, min(rt.Capacity-a, children)
	}

	base := rt.BaseCapacity()
	flex := rt.Occupancy.FlexSeats

	if !rt.Occupancy.FlexRequiresAdultBase {
		a := min(base+flex, adults)

		return a, min(base+flex-a, children)
	}

	a := min(base, adults)
	if a == base {
		return a, min(flex, children)
	}

	return a, min(base-a, children)
}

func combinationCost(roomTypes []domain.RoomType, counts []int, nights int) int64 {
	var cost int64

	for i := range roomTypes {
		cost += int64(counts[i]) * roomTypes[i].PricePerNight * int64(nights)
	}

	return cost
}

func buildResult(party domain.Party, roomTypes []domain.RoomType, counts []int, nights int) *domain.AllocationResult {
	result := domain.EmptyAllocation()

	for i := range roomTypes {
		if counts[i] == 0 {
			continue
		}

		rt := roomTypes[i]
		allocation := domain.RoomAllocation{
			RoomType:      rt,
			RoomsNeeded:   counts[i],
			TotalCapacity: counts[i] * rt.Capacity,
			TotalCost:     int64(counts[i]) * rt.PricePerNight * int64(nights),
		}

		result.Allocations = append(result.Allocations, allocation)
		result.TotalCost += allocation.TotalCost
		result.TotalCapacity += allocation.TotalCapacity
	}

	result.CostPerPerson = float64(result.TotalCost) / float64(party.TotalPeople())
	result.IsValid = CanAccommodate(party, result.Allocations)

	return result
}
