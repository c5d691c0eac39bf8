package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/madoxlx/EGTV3-sub011/internal/core/domain"
	"github.com/madoxlx/EGTV3-sub011/internal/core/services"
)

type AllocationHandler struct {
	svc *services.AllocationService
}

func NewAllocationHandler(svc *services.AllocationService) *AllocationHandler {
	return &AllocationHandler{svc: svc}
}

type updateInventoryRequest struct {
	Available *int `json:"available"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrRoomTypeNotFound), errors.Is(err, domain.ErrQuoteNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("Request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func decodeQuoteRequest(w http.ResponseWriter, r *http.Request) (services.QuoteRequest, bool) {
	var req services.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return req, false
	}

	return req, true
}

func (h *AllocationHandler) QuoteAllocation(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeQuoteRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.QuoteAllocation(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if resp.QuoteID != "" {
		status = http.StatusCreated
	}

	writeJSON(w, status, resp)
}

func (h *AllocationHandler) CompareAllocations(w http.ResponseWriter, r *http.Request) {
	var limit int

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}

		limit = n
	}

	req, ok := decodeQuoteRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.CompareAllocations(r.Context(), req, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AllocationHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.GetQuote(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AllocationHandler) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	roomTypes, err := h.svc.ListRoomTypes(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roomTypes)
}

func (h *AllocationHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	var req updateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Available == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	roomType, err := h.svc.UpdateInventory(r.Context(), r.PathValue("id"), *req.Available)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, roomType)
}

func (h *AllocationHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Routes registers every endpoint on mux behind the access-log and recover middlewares.
func (h *AllocationHandler) Routes(mux *http.ServeMux) {
	wrap := func(fn http.HandlerFunc) http.Handler {
		return applyMiddlewares(fn, recoverMiddleware, loggerMiddleware)
	}

	mux.Handle("POST /allocations", wrap(h.QuoteAllocation))
	mux.Handle("POST /allocations/compare", wrap(h.CompareAllocations))
	mux.Handle("GET /quotes/{id}", wrap(h.GetQuote))
	mux.Handle("GET /hotels/{id}/room-types", wrap(h.ListRoomTypes))
	mux.Handle("PUT /room-types/{id}/inventory", wrap(h.UpdateInventory))
	mux.Handle("GET /health", wrap(h.Health))
}
