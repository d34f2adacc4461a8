package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/usecase"
	"movie-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowHandler struct {
	service usecase.ShowService
	log     *zap.Logger
}

func NewShowHandler(service usecase.ShowService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service: service,
		log:     log.With(zap.String("handler", "show")),
	}
}

// GetShows handles GET /api/shows (public)
// Query params: ?movie=550&theater=<uuid>&date=2026-09-05&city=Mumbai
func (h *ShowHandler) GetShows(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.ShowFilter{
		MovieTmdbID: utils.ParseInt(query.Get("movie"), 0),
		City:        query.Get("city"),
	}
	if raw := query.Get("theater"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid theater filter", nil)
			return
		}
		filter.TheaterID = id
	}
	if raw := query.Get("date"); raw != "" {
		date, err := utils.ParseDate(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid date filter, expected YYYY-MM-DD", nil)
			return
		}
		filter.Date = date
	}

	shows, err := h.service.ListShows(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.log, err, "list shows")
		return
	}

	utils.ResponseSuccess(w, "success", shows)
}

// GetShow handles GET /api/shows/{id} (public)
func (h *ShowHandler) GetShow(w http.ResponseWriter, r *http.Request) {
	show, err := h.service.GetShow(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get show")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// GetSeatMap handles GET /api/shows/{id}/seats/{showTimeId} (public)
func (h *ShowHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	seatMap, err := h.service.GetSeatMap(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "showTimeId"))
	if err != nil {
		respondServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}

// HoldSeats handles PUT /api/shows/{id}/hold-seats (protected)
func (h *ShowHandler) HoldSeats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.HoldSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	hold, err := h.service.HoldSeats(r.Context(), userID.String(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "hold seats")
		return
	}

	utils.ResponseSuccess(w, "Seats held", hold)
}

// ReleaseSeats handles PUT /api/shows/release-seats (protected)
func (h *ShowHandler) ReleaseSeats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.HoldSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ReleaseSeats(r.Context(), userID.String(), &req); err != nil {
		respondServiceError(w, h.log, err, "release seats")
		return
	}

	utils.ResponseSuccess(w, "Seats released", nil)
}

// CreateShow handles POST /api/admin/shows (admin)
func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	show, err := h.service.CreateShow(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create show")
		return
	}

	utils.ResponseCreated(w, "Show created", show)
}

// UpdateShow handles PUT /api/admin/shows/{id} (admin)
func (h *ShowHandler) UpdateShow(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	show, err := h.service.UpdateShow(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update show")
		return
	}

	utils.ResponseSuccess(w, "Show updated", show)
}

// DeleteShow handles DELETE /api/admin/shows/{id} (admin)
func (h *ShowHandler) DeleteShow(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteShow(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err, "delete show")
		return
	}

	utils.ResponseSuccess(w, "Show deleted", nil)
}
