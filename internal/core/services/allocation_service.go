package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/madoxlx/EGTV3-sub011/internal/core/allocation"
	"github.com/madoxlx/EGTV3-sub011/internal/core/domain"
	"github.com/madoxlx/EGTV3-sub011/internal/core/ports"
)

const (
	DefaultCompareLimit = 3
	MaxCompareLimit     = 10
)

type QuoteRequest struct {
	HotelID  string `json:"hotel_id"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Nights   int    `json:"nights"`
}

type QuoteResponse struct {
	*domain.AllocationResult
	QuoteID    string `json:"quote_id,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type CompareResponse struct {
	Options []domain.AllocationResult `json:"options"`
}

type QuoteItemResponse struct {
	RoomTypeID    string `json:"room_type_id"`
	Rooms         int    `json:"rooms"`
	PricePerNight int64  `json:"price_per_night"`
}

type QuoteDetailsResponse struct {
	QuoteID   string              `json:"quote_id"`
	HotelID   string              `json:"hotel_id"`
	Adults    int                 `json:"adults"`
	Children  int                 `json:"children"`
	Nights    int                 `json:"nights"`
	TotalCost int64               `json:"total_cost"`
	Status    string              `json:"status"`
	ExpiresAt string              `json:"expires_at"`
	Items     []QuoteItemResponse `json:"items"`
}

type Config struct {
	QuoteTTL        time.Duration
	CacheTTL        time.Duration
	CleanupInterval time.Duration
}

type AllocationService struct {
	roomRepo  ports.RoomTypeRepository
	quoteRepo ports.QuoteRepository
	cache     *redis.Client
	cfg       Config
}

func NewAllocationService(roomRepo ports.RoomTypeRepository, quoteRepo ports.QuoteRepository, cache *redis.Client, cfg Config) *AllocationService {
	return &AllocationService{
		roomRepo:  roomRepo,
		quoteRepo: quoteRepo,
		cache:     cache,
		cfg:       cfg,
	}
}

func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", domain.ErrInvalidInput, field)
	}

	return id, nil
}

// QuoteAllocation computes the cheapest room mix for the party at the given
// hotel and, when the party fits, stores it as a time-limited quote.
func (s *AllocationService) QuoteAllocation(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	hotelID, err := parseID(req.HotelID, "hotel id")
	if err != nil {
		return nil, err
	}

	party := domain.Party{Adults: req.Adults, Children: req.Children}
	if err := allocation.ValidateRequest(party, req.Nights); err != nil {
		return nil, err
	}

	result, ok := s.cachedAllocation(ctx, hotelID, party, req.Nights)
	if !ok {
		roomTypes, err := s.roomRepo.ListByHotel(ctx, hotelID)
		if err != nil {
			return nil, fmt.Errorf("failed to load room types for hotel %s: %w", hotelID, err)
		}

		result, err = allocation.Allocate(party, roomTypes, req.Nights)
		if err != nil {
			return nil, err
		}

		s.cacheAllocation(ctx, hotelID, party, req.Nights, result)
	}

	if !result.IsValid {
		return &QuoteResponse{
			AllocationResult: result,
			Suggestion:       suggestion(party),
		}, nil
	}

	quote := newQuote(hotelID, party, req.Nights, result, s.cfg.QuoteTTL)
	if err := s.quoteRepo.CreateQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	return &QuoteResponse{
		AllocationResult: result,
		QuoteID:          quote.ID.String(),
		ExpiresAt:        quote.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// CompareAllocations lists the cheapest feasible room mixes side by side.
func (s *AllocationService) CompareAllocations(ctx context.Context, req QuoteRequest, limit int) (*CompareResponse, error) {
	hotelID, err := parseID(req.HotelID, "hotel id")
	if err != nil {
		return nil, err
	}

	if limit == 0 {
		limit = DefaultCompareLimit
	}

	if limit < 1 || limit > MaxCompareLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidInput, MaxCompareLimit)
	}

	party := domain.Party{Adults: req.Adults, Children: req.Children}
	if err := allocation.ValidateRequest(party, req.Nights); err != nil {
		return nil, err
	}

	roomTypes, err := s.roomRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load room types for hotel %s: %w", hotelID, err)
	}

	options, err := allocation.Rank(party, roomTypes, req.Nights, limit)
	if err != nil {
		return nil, err
	}

	return &CompareResponse{Options: options}, nil
}

func (s *AllocationService) ListRoomTypes(ctx context.Context, hotelIDStr string) ([]domain.RoomType, error) {
	hotelID, err := parseID(hotelIDStr, "hotel id")
	if err != nil {
		return nil, err
	}

	return s.roomRepo.ListByHotel(ctx, hotelID)
}

// UpdateInventory sets how many rooms of a type can be allocated and drops
// every cached allocation for the room type's hotel.
func (s *AllocationService) UpdateInventory(ctx context.Context, roomTypeIDStr string, available int) (*domain.RoomType, error) {
	roomTypeID, err := parseID(roomTypeIDStr, "room type id")
	if err != nil {
		return nil, err
	}

	if available < 0 {
		return nil, fmt.Errorf("%w: available must not be negative", domain.ErrInvalidInput)
	}

	roomType, err := s.roomRepo.GetByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.UpdateAvailable(ctx, roomTypeID, available); err != nil {
		return nil, fmt.Errorf("failed to update inventory of room type %s: %w", roomTypeID, err)
	}

	roomType.Available = available

	if err := s.cache.Del(ctx, cacheKey(roomType.HotelID)).Err(); err != nil {
		log.Printf("Failed to invalidate allocation cache for hotel %s: %v", roomType.HotelID, err)
	}

	return roomType, nil
}

func (s *AllocationService) GetQuote(ctx context.Context, quoteIDStr string) (*QuoteDetailsResponse, error) {
	quoteID, err := parseID(quoteIDStr, "quote id")
	if err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	status := quote.Status
	if quote.IsExpired(time.Now()) {
		status = domain.QuoteExpired
	}

	items := make([]QuoteItemResponse, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, QuoteItemResponse{
			RoomTypeID:    item.RoomTypeID.String(),
			Rooms:         item.Rooms,
			PricePerNight: item.PricePerNight,
		})
	}

	return &QuoteDetailsResponse{
		QuoteID:   quote.ID.String(),
		HotelID:   quote.HotelID.String(),
		Adults:    quote.Adults,
		Children:  quote.Children,
		Nights:    quote.Nights,
		TotalCost: quote.TotalCost,
		Status:    string(status),
		ExpiresAt: quote.ExpiresAt.Format(time.RFC3339),
		Items:     items,
	}, nil
}

func newQuote(hotelID uuid.UUID, party domain.Party, nights int, result *domain.AllocationResult, ttl time.Duration) *domain.Quote {
	now := time.Now()

	quote := &domain.Quote{
		ID:        uuid.New(),
		HotelID:   hotelID,
		Adults:    party.Adults,
		Children:  party.Children,
		Nights:    nights,
		TotalCost: result.TotalCost,
		Status:    domain.QuoteActive,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	for _, a := range result.Allocations {
		quote.Items = append(quote.Items, domain.QuoteItem{
			ID:            uuid.New(),
			QuoteID:       quote.ID,
			RoomTypeID:    a.RoomType.ID,
			Rooms:         a.RoomsNeeded,
			PricePerNight: a.RoomType.PricePerNight,
		})
	}

	return quote
}

func suggestion(party domain.Party) string {
	return fmt.Sprintf("no combination of available rooms fits %d travellers; try splitting the party across bookings or another hotel", party.TotalPeople())
}

func cacheKey(hotelID uuid.UUID) string {
	return fmt.Sprintf("allocations:%s", hotelID.String())
}

func cacheField(party domain.Party, nights int) string {
	return fmt.Sprintf("%d:%d:%d", party.Adults, party.Children, nights)
}

func (s *AllocationService) cachedAllocation(ctx context.Context, hotelID uuid.UUID, party domain.Party, nights int) (*domain.AllocationResult, bool) {
	raw, err := s.cache.HGet(ctx, cacheKey(hotelID), cacheField(party, nights)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Failed to read allocation cache for hotel %s: %v", hotelID, err)
		}

		return nil, false
	}

	var result domain.AllocationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Printf("Discarding malformed cached allocation for hotel %s: %v", hotelID, err)

		return nil, false
	}

	return &result, true
}

func (s *AllocationService) cacheAllocation(ctx context.Context, hotelID uuid.UUID, party domain.Party, nights int, result *domain.AllocationResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("Failed to encode allocation for cache: %v", err)
		return
	}

	key := cacheKey(hotelID)

	if err := s.cache.HSet(ctx, key, cacheField(party, nights), string(payload)).Err(); err != nil {
		log.Printf("Failed to cache allocation for hotel %s: %v", hotelID, err)
		return
	}

	if err := s.cache.Expire(ctx, key, s.cfg.CacheTTL).Err(); err != nil {
		log.Printf("Failed to set allocation cache ttl for hotel %s: %v", hotelID, err)
	}
}

func (s *AllocationService) RunBackgroundCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	log.Printf("Background Worker started: Expiring stale quotes every %s...", s.cfg.CleanupInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Background Worker stopped.")
			return
		case <-ticker.C:
			s.processExpiredQuotes(ctx)
		}
	}
}

func (s *AllocationService) processExpiredQuotes(ctx context.Context) {
	ids, err := s.quoteRepo.GetExpiredQuotes(ctx)
	if err != nil {
		log.Printf("Error fetching expired quotes: %v", err)
		return
	}

	if len(ids) == 0 {
		return
	}

	log.Printf("Found %d expired quotes. Cleaning up...", len(ids))

	for _, id := range ids {
		if err := s.quoteRepo.ExpireQuote(ctx, id); err != nil {
			log.Printf("Failed to expire quote %s: %v", id, err)
		} else {
			log.Printf("Quote %s expired.", id)
		}
	}
}
