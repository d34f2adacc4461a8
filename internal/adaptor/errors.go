package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/usecase"
	"movie-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// respondServiceError maps service failures onto HTTP responses. Seat
// conflicts and active holds answer 409 with the contested seat numbers so
// the client can prompt a reselection.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var seatConflict *repository.SeatConflictError
	var seatsHeld *usecase.SeatsHeldError

	switch {
	case errors.As(err, &seatConflict):
		log.Info(operation+" failed - seat conflict",
			zap.Strings("seats", seatConflict.Seats))
		utils.ResponseConflict(w, seatConflict.Error(), map[string]any{"seats": seatConflict.Seats})

	case errors.As(err, &seatsHeld):
		log.Info(operation+" failed - seats held",
			zap.Strings("seats", seatsHeld.Seats))
		utils.ResponseConflict(w, seatsHeld.Error(), map[string]any{"seats": seatsHeld.Seats})

	case errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, repository.ErrShowInactive),
		errors.Is(err, usecase.ErrCancellationWindowClosed),
		errors.Is(err, usecase.ErrAlreadyCancelled),
		errors.Is(err, usecase.ErrPriceMismatch):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "cannot"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
