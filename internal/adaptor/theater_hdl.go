package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/usecase"
	"movie-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TheaterHandler struct {
	service usecase.TheaterService
	log     *zap.Logger
}

func NewTheaterHandler(service usecase.TheaterService, log *zap.Logger) *TheaterHandler {
	return &TheaterHandler{
		service: service,
		log:     log.With(zap.String("handler", "theater")),
	}
}

// GetTheaters handles GET /api/theaters (public)
// Query params: ?city=Mumbai&page=1&per_page=10
func (h *TheaterHandler) GetTheaters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	theaters, err := h.service.ListTheaters(r.Context(), query.Get("city"), req)
	if err != nil {
		respondServiceError(w, h.log, err, "list theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// GetTheater handles GET /api/theaters/{id} (public)
func (h *TheaterHandler) GetTheater(w http.ResponseWriter, r *http.Request) {
	theater, err := h.service.GetTheater(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.log, err, "get theater")
		return
	}

	utils.ResponseSuccess(w, "success", theater)
}

// CreateTheater handles POST /api/admin/theaters (admin)
func (h *TheaterHandler) CreateTheater(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	theater, err := h.service.CreateTheater(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create theater")
		return
	}

	utils.ResponseCreated(w, "Theater created", theater)
}

// UpdateTheater handles PUT /api/admin/theaters/{id} (admin)
func (h *TheaterHandler) UpdateTheater(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTheaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	theater, err := h.service.UpdateTheater(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "update theater")
		return
	}

	utils.ResponseSuccess(w, "Theater updated", theater)
}

// DeleteTheater handles DELETE /api/admin/theaters/{id} (admin)
func (h *TheaterHandler) DeleteTheater(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTheater(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.log, err, "delete theater")
		return
	}

	utils.ResponseSuccess(w, "Theater deleted", nil)
}
