package allocation

import (
	"cmp"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madoxlx/EGTV3-sub011/internal/core/domain"
)

func tripleRoom() domain.RoomType {
	return domain.RoomType{
		ID:            uuid.New(),
		Name:          "Triple",
		Capacity:      3,
		PricePerNight: 1600,
		Available:     5,
		Occupancy: &domain.OccupancyPolicy{
			BaseCapacity:          3,
			FlexSeats:             1,
			FlexRequiresAdultBase: true,
		},
	}
}

func catalog() []domain.RoomType {
	return []domain.RoomType{
		tripleRoom(),
		{ID: uuid.New(), Name: "Double", Capacity: 2, PricePerNight: 2000, Available: 10},
		{ID: uuid.New(), Name: "Single", Capacity: 1, PricePerNight: 1000, Available: 3},
	}
}

func roomsByName(result *domain.AllocationResult) map[string]int {
	rooms := make(map[string]int)
	for _, a := range result.Allocations {
		rooms[a.RoomType.Name] = a.RoomsNeeded
	}

	return rooms
}

func TestAllocate_Fixtures(t *testing.T) {
	tests := []struct {
		name      string
		party     domain.Party
		wantRooms map[string]int
		wantCost  int64
	}{
		{
			name:      "four adults take a triple and a single",
			party:     domain.Party{Adults: 4},
			wantRooms: map[string]int{"Triple": 1, "Single": 1},
			wantCost:  5200,
		},
		{
			name:      "three adults and a child share one triple",
			party:     domain.Party{Adults: 3, Children: 1},
			wantRooms: map[string]int{"Triple": 1},
			wantCost:  3200,
		},
		{
			name:      "seven adults take two triples and a single",
			party:     domain.Party{Adults: 7},
			wantRooms: map[string]int{"Triple": 2, "Single": 1},
			wantCost:  8400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Allocate(tt.party, catalog(), 2)

			require.NoError(t, err)
			assert.True(t, result.IsValid)
			assert.Equal(t, tt.wantRooms, roomsByName(result))
			assert.Equal(t, tt.wantCost, result.TotalCost)
			assert.InDelta(t, float64(tt.wantCost)/float64(tt.party.TotalPeople()), result.CostPerPerson, 1e-9)
		})
	}
}

func TestAllocate_EmptyInventory(t *testing.T) {
	result, err := Allocate(domain.Party{Adults: 2, Children: 1}, nil, 3)

	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Empty(t, result.Allocations)
	assert.Zero(t, result.TotalCost)
	assert.Zero(t, result.TotalCapacity)
}

func TestAllocate_Infeasible(t *testing.T) {
	rooms := []domain.RoomType{
		{ID: uuid.New(), Name: "Double", Capacity: 2, PricePerNight: 2000, Available: 1},
	}

	result, err := Allocate(domain.Party{Adults: 3}, rooms, 1)

	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Empty(t, result.Allocations)
}

func TestAllocate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		party  domain.Party
		rooms  []domain.RoomType
		nights int
	}{
		{name: "negative adults", party: domain.Party{Adults: -1, Children: 2}, rooms: catalog(), nights: 1},
		{name: "negative children", party: domain.Party{Adults: 2, Children: -1}, rooms: catalog(), nights: 1},
		{name: "empty party", party: domain.Party{}, rooms: catalog(), nights: 1},
		{name: "zero nights", party: domain.Party{Adults: 1}, rooms: catalog(), nights: 0},
		{name: "negative nights", party: domain.Party{Adults: 1}, rooms: catalog(), nights: -2},
		{
			name:   "zero capacity",
			party:  domain.Party{Adults: 1},
			rooms:  []domain.RoomType{{Name: "Broken", Capacity: 0, PricePerNight: 100, Available: 1}},
			nights: 1,
		},
		{
			name:   "negative availability",
			party:  domain.Party{Adults: 1},
			rooms:  []domain.RoomType{{Name: "Single", Capacity: 1, PricePerNight: 100, Available: -1}},
			nights: 1,
		},
		{
			name:   "negative price",
			party:  domain.Party{Adults: 1},
			rooms:  []domain.RoomType{{Name: "Single", Capacity: 1, PricePerNight: -5, Available: 1}},
			nights: 1,
		},
		{
			name:  "flex base of zero",
			party: domain.Party{Adults: 1},
			rooms: []domain.RoomType{{
				Name: "Triple", Capacity: 3, PricePerNight: 100, Available: 1,
				Occupancy: &domain.OccupancyPolicy{BaseCapacity: 0, FlexSeats: 1},
			}},
			nights: 1,
		},
		{
			name:  "policy without flex seats",
			party: domain.Party{Adults: 1},
			rooms: []domain.RoomType{{
				Name: "Triple", Capacity: 4, PricePerNight: 100, Available: 1,
				Occupancy: &domain.OccupancyPolicy{BaseCapacity: 3, FlexSeats: 0},
			}},
			nights: 1,
		},
		{name: "party over the limit", party: domain.Party{Adults: 20, Children: 11}, rooms: catalog(), nights: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Allocate(tt.party, tt.rooms, tt.nights)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, result)
		})
	}
}

func TestAllocate_CostScalesWithNights(t *testing.T) {
	party := domain.Party{Adults: 5, Children: 2}

	one, err := Allocate(party, catalog(), 1)
	require.NoError(t, err)

	for _, nights := range []int{2, 3, 7} {
		result, err := Allocate(party, catalog(), nights)
		require.NoError(t, err)
		assert.Equal(t, int64(nights)*one.TotalCost, result.TotalCost, "nights=%d", nights)
	}
}

func TestAllocate_ResultSeatsParty(t *testing.T) {
	for adults := 0; adults <= 9; adults++ {
		for children := 0; children <= 4; children++ {
			party := domain.Party{Adults: adults, Children: children}
			if party.TotalPeople() == 0 {
				continue
			}

			result, err := Allocate(party, catalog(), 1)
			require.NoError(t, err)

			if result.IsValid {
				assert.True(t, CanAccommodate(party, result.Allocations), "party %+v", party)
			}

			for _, a := range result.Allocations {
				assert.LessOrEqual(t, a.RoomsNeeded, a.RoomType.Available, "party %+v", party)
			}
		}
	}
}

func TestAllocate_Idempotent(t *testing.T) {
	rooms := catalog()
	party := domain.Party{Adults: 6, Children: 3}

	first, err := Allocate(party, rooms, 4)
	require.NoError(t, err)

	second, err := Allocate(party, rooms, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAllocate_CostIsMinimal(t *testing.T) {
	rooms := catalog()

	for adults := 0; adults <= 8; adults++ {
		for children := 0; children <= 3; children++ {
			party := domain.Party{Adults: adults, Children: children}
			if party.TotalPeople() == 0 {
				continue
			}

			result, err := Allocate(party, rooms, 2)
			require.NoError(t, err)

			enumerate(party, rooms, func(counts []int) {
				assert.LessOrEqual(t, result.TotalCost, combinationCost(rooms, counts, 2), "party %+v counts %v", party, counts)
			})
		}
	}
}

func TestAllocate_UnavailableTypeNeverUsed(t *testing.T) {
	rooms := catalog()
	rooms[2].Available = 0

	result, err := Allocate(domain.Party{Adults: 4}, rooms, 2)

	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.NotContains(t, roomsByName(result), "Single")

	enumerate(domain.Party{Adults: 4}, rooms, func(counts []int) {
		assert.Zero(t, counts[2])
	})
}

func TestAllocate_FlexPolicyNotNameBased(t *testing.T) {
	// Same room named "Triple" without a policy must not take a fourth guest.
	plain := tripleRoom()
	plain.Occupancy = nil

	result, err := Allocate(domain.Party{Adults: 3, Children: 1}, []domain.RoomType{plain}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Allocations[0].RoomsNeeded)

	// A room named anything can flex once it declares the policy.
	family := tripleRoom()
	family.Name = "Family Suite"

	result, err = Allocate(domain.Party{Adults: 3, Children: 1}, []domain.RoomType{family}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Allocations[0].RoomsNeeded)
}

func TestSeatRoom(t *testing.T) {
	triple := tripleRoom()
	double := domain.RoomType{Name: "Double", Capacity: 2}

	tests := []struct {
		name             string
		room             domain.RoomType
		adults, children int
		wantA, wantC     int
	}{
		{name: "triple full of adults takes one child", room: triple, adults: 3, children: 2, wantA: 3, wantC: 1},
		{name: "triple with two adults takes one child", room: triple, adults: 2, children: 2, wantA: 2, wantC: 1},
		{name: "triple with no adults takes three children", room: triple, adults: 0, children: 4, wantA: 0, wantC: 3},
		{name: "triple caps adults at base", room: triple, adults: 5, children: 0, wantA: 3, wantC: 0},
		{name: "double seats adults first", room: double, adults: 1, children: 3, wantA: 1, wantC: 1},
		{name: "double with only children", room: double, adults: 0, children: 1, wantA: 0, wantC: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, c := seatRoom(&tt.room, tt.adults, tt.children)

			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantC, c)
		})
	}
}

func TestSeatRoom_FlexWithoutAdultBase(t *testing.T) {
	room := domain.RoomType{
		Name:     "Bunk",
		Capacity: 2,
		Occupancy: &domain.OccupancyPolicy{
			BaseCapacity: 2,
			FlexSeats:    2,
		},
	}

	a, c := seatRoom(&room, 1, 5)

	assert.Equal(t, 1, a)
	assert.Equal(t, 3, c)
}

func TestCanAccommodate_FollowsAllocationOrder(t *testing.T) {
	triple := tripleRoom()
	single := domain.RoomType{Name: "Single", Capacity: 1, PricePerNight: 1000, Available: 3}

	// 3 adults + 2 children: the triple seats 3A+1C, the single takes the last child.
	ok := CanAccommodate(domain.Party{Adults: 3, Children: 2}, []domain.RoomAllocation{
		{RoomType: triple, RoomsNeeded: 1},
		{RoomType: single, RoomsNeeded: 1},
	})
	assert.True(t, ok)

	// 4 adults + 1 child: the single goes first and takes an adult, the triple
	// then takes 3 adults and the child.
	ok = CanAccommodate(domain.Party{Adults: 4, Children: 1}, []domain.RoomAllocation{
		{RoomType: single, RoomsNeeded: 1},
		{RoomType: triple, RoomsNeeded: 1},
	})
	assert.True(t, ok)

	// Same rooms, triple first: it takes 3A+1C, the single takes the last adult.
	ok = CanAccommodate(domain.Party{Adults: 4, Children: 2}, []domain.RoomAllocation{
		{RoomType: triple, RoomsNeeded: 1},
		{RoomType: single, RoomsNeeded: 1},
	})
	assert.False(t, ok)
}

func TestRank(t *testing.T) {
	party := domain.Party{Adults: 4}

	options, err := Rank(party, catalog(), 2, 3)
	require.NoError(t, err)
	require.Len(t, options, 3)

	best, err := Allocate(party, catalog(), 2)
	require.NoError(t, err)

	assert.Equal(t, best.TotalCost, options[0].TotalCost)
	assert.Equal(t, roomsByName(best), roomsByName(&options[0]))

	for i := 1; i < len(options); i++ {
		assert.LessOrEqual(t, options[i-1].TotalCost, options[i].TotalCost)
		assert.True(t, options[i].IsValid)
	}
}

func TestRank_InvalidLimit(t *testing.T) {
	_, err := Rank(domain.Party{Adults: 1}, catalog(), 1, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRank_EmptyInventory(t *testing.T) {
	options, err := Rank(domain.Party{Adults: 1}, nil, 1, 3)

	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestAllocate_LargestPartyAccepted(t *testing.T) {
	result, err := Allocate(domain.Party{Adults: MaxPartySize}, catalog(), 1)

	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func countsByID(roomTypes []domain.RoomType, result *domain.AllocationResult) []int {
	counts := make([]int, len(roomTypes))
	for _, a := range result.Allocations {
		i := slices.IndexFunc(roomTypes, func(rt domain.RoomType) bool { return rt.ID == a.RoomType.ID })
		counts[i] = a.RoomsNeeded
	}

	return counts
}

func TestRank_LargeCatalogMatchesExhaustiveOrder(t *testing.T) {
	prices := []int64{1000, 1000, 1200, 900, 1100}
	roomTypes := make([]domain.RoomType, len(prices))
	for i, price := range prices {
		roomTypes[i] = domain.RoomType{ID: uuid.New(), Name: "Twin", Capacity: 2, PricePerNight: price, Available: 30}
	}

	party := domain.Party{Adults: 9, Children: 3}
	const nights, limit = 2, 5

	var all []candidate
	enumerate(party, roomTypes, func(counts []int) {
		all = append(all, candidate{counts: slices.Clone(counts), cost: combinationCost(roomTypes, counts, nights)})
	})
	slices.SortStableFunc(all, func(a, b candidate) int { return cmp.Compare(a.cost, b.cost) })
	require.Greater(t, len(all), limit)

	options, err := Rank(party, roomTypes, nights, limit)
	require.NoError(t, err)
	require.Len(t, options, limit)

	for i := range options {
		assert.Equal(t, all[i].cost, options[i].TotalCost)
		assert.Equal(t, all[i].counts, countsByID(roomTypes, &options[i]))
		assert.True(t, options[i].IsValid)
	}

	best, err := Allocate(party, roomTypes, nights)
	require.NoError(t, err)
	assert.Equal(t, countsByID(roomTypes, best), countsByID(roomTypes, &options[0]))
}

func TestKeepCheapest_TiesKeepArrivalOrder(t *testing.T) {
	var top []candidate

	top = keepCheapest(top, []int{1}, 500, 3)
	top = keepCheapest(top, []int{2}, 300, 3)
	top = keepCheapest(top, []int{3}, 300, 3)
	top = keepCheapest(top, []int{4}, 500, 3)
	top = keepCheapest(top, []int{5}, 100, 3)

	require.Len(t, top, 3)
	assert.Equal(t, []int{5}, top[0].counts)
	assert.Equal(t, []int{2}, top[1].counts)
	assert.Equal(t, []int{3}, top[2].counts)
}
