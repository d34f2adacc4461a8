package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-ticketing/internal/data/entity"
	"movie-ticketing/internal/data/repository"
	"movie-ticketing/internal/dto/request"
	"movie-ticketing/internal/dto/response"
	"movie-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowService interface {
	// Public endpoints
	GetShow(ctx context.Context, id string) (*response.ShowDetailResponse, error)
	ListShows(ctx context.Context, filter repository.ShowFilter) ([]response.ShowResponse, error)
	GetSeatMap(ctx context.Context, showID, showTimeID string) (*response.SeatMapResponse, error)

	// Protected endpoints
	HoldSeats(ctx context.Context, userID string, showID string, req *request.HoldSeatsRequest) (*response.HoldSeatsResponse, error)
	ReleaseSeats(ctx context.Context, userID string, req *request.HoldSeatsRequest) error

	// Admin endpoints
	CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowDetailResponse, error)
	UpdateShow(ctx context.Context, id string, req *request.UpdateShowRequest) (*response.ShowResponse, error)
	DeleteShow(ctx context.Context, id string) error
}

type showService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowService(repo *repository.Repository, log *zap.Logger) ShowService {
	return &showService{
		repo: repo,
		log:  log.With(zap.String("service", "show")),
	}
}

func (s *showService) CreateShow(ctx context.Context, req *request.CreateShowRequest) (*response.ShowDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create show validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	theaterID, err := utils.ParseUUID(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", req.TheaterID, err)
	}

	screen, err := s.repo.Theater.FindScreen(ctx, theaterID, req.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("get screen: %w", err)
	}
	if screen == nil {
		return nil, fmt.Errorf("screen %s in theater %s: %w", req.ScreenID, req.TheaterID, repository.ErrNotFound)
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, err)
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %s: %w", req.EndDate, err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("invalid date range: end date before start date")
	}

	show := &entity.Show{
		Movie: entity.MovieSnapshot{
			TmdbID:     req.Movie.TmdbID,
			Title:      req.Movie.Title,
			PosterPath: req.Movie.PosterPath,
			Duration:   req.Movie.Duration,
			Genre:      req.Movie.Genre,
			Rating:     req.Movie.Rating,
			Language:   req.Movie.Language,
		},
		TheaterID:  theaterID,
		ScreenID:   screen.ScreenID,
		ScreenName: screen.Name,
		Format:     entity.ShowFormat(req.Format),
		StartDate:  startDate,
		EndDate:    endDate,
		Status:     entity.ShowStatusActive,
	}
	show.Base = entity.NewBase()

	for _, in := range req.ShowTimes {
		st, err := buildShowTime(show.ID, screen, &in)
		if err != nil {
			return nil, err
		}
		show.ShowTimes = append(show.ShowTimes, *st)
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		s.log.Error("Failed to create show", zap.Error(err))
		return nil, fmt.Errorf("create show: %w", err)
	}

	s.log.Info("Show created",
		zap.String("show_id", show.ID.String()),
		zap.String("movie_title", show.Movie.Title),
		zap.Int("show_times", len(show.ShowTimes)))

	resp := response.ShowToDetailResponse(show)
	return &resp, nil
}

// buildShowTime turns one schedule input into a show-time with a full seat
// inventory. Every seat type present on the screen layout must be priced.
func buildShowTime(showID uuid.UUID, screen *entity.Screen, in *request.ShowTimeInput) (*entity.ShowTime, error) {
	date, err := utils.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid show date %s: %w", in.Date, err)
	}

	var prices entity.SeatPrices
	for _, st := range screen.Layout.SeatTypes {
		price, ok := in.Prices[string(st.Type)]
		if !ok || price < 1 {
			return nil, fmt.Errorf("invalid price for seat type %s at %s %s", st.Type, in.Date, in.Time)
		}
		switch st.Type {
		case entity.SeatTypePremium:
			prices.Premium = price
		case entity.SeatTypeGold:
			prices.Gold = price
		case entity.SeatTypeSilver:
			prices.Silver = price
		case entity.SeatTypeRegular:
			prices.Regular = price
		}
	}
	if prices.Regular == 0 {
		if price, ok := in.Prices[string(entity.SeatTypeRegular)]; ok {
			prices.Regular = price
		}
	}

	st := &entity.ShowTime{
		ShowID:         showID,
		Date:           date,
		Time:           in.Time,
		Prices:         prices,
		AvailableSeats: screen.Capacity,
		BookedSeats:    []string{},
		Status:         entity.ShowTimeStatusActive,
	}
	st.Base = entity.NewBase()
	return st, nil
}

func (s *showService) GetShow(ctx context.Context, id string) (*response.ShowDetailResponse, error) {
	showID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", id, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("get show: %w", err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %s: %w", id, repository.ErrNotFound)
	}

	resp := response.ShowToDetailResponse(show)
	return &resp, nil
}

func (s *showService) ListShows(ctx context.Context, filter repository.ShowFilter) ([]response.ShowResponse, error) {
	shows, err := s.repo.Show.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}

	items := make([]response.ShowResponse, len(shows))
	for i, show := range shows {
		items[i] = response.ShowToResponse(show)
	}
	return items, nil
}

func (s *showService) GetSeatMap(ctx context.Context, showID, showTimeID string) (*response.SeatMapResponse, error) {
	show, showTime, err := s.findShowAndTime(ctx, showID, showTimeID)
	if err != nil {
		return nil, err
	}

	screen, err := s.repo.Theater.FindScreen(ctx, show.TheaterID, show.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("get screen: %w", err)
	}
	if screen == nil {
		return nil, fmt.Errorf("screen %s: %w", show.ScreenID, repository.ErrNotFound)
	}

	booked := make(map[string]bool, len(showTime.BookedSeats))
	for _, seat := range showTime.BookedSeats {
		booked[seat] = true
	}

	layout := screen.Layout
	allSeats := make([]string, 0, layout.Rows*layout.SeatsPerRow)
	for row := 0; row < layout.Rows; row++ {
		for col := 1; col <= layout.SeatsPerRow; col++ {
			allSeats = append(allSeats, fmt.Sprintf("%s%d", entity.RowLetter(row), col))
		}
	}

	held, err := s.repo.Hold.HeldSeats(ctx, showTime.ID, allSeats)
	if err != nil {
		// Seat map still renders without hold info; holds only
		// pre-screen, reservation is the real gate.
		s.log.Warn("Failed to load seat holds", zap.Error(err))
		held = map[string]bool{}
	}

	seats := make([]response.SeatStateResponse, 0, len(allSeats))
	for _, seatNumber := range allSeats {
		row := seatNumber[:1]
		seatType := screen.SeatTypeForRow(row)
		price, _ := showTime.Prices.For(seatType)
		seats = append(seats, response.SeatStateResponse{
			SeatNumber: seatNumber,
			SeatType:   seatType,
			Price:      price,
			IsBooked:   booked[seatNumber],
			IsHeld:     held[seatNumber],
		})
	}

	return &response.SeatMapResponse{
		ShowTimeID:     showTime.ID.String(),
		ScreenName:     screen.Name,
		Rows:           layout.Rows,
		SeatsPerRow:    layout.SeatsPerRow,
		AvailableSeats: showTime.AvailableSeats,
		Seats:          seats,
	}, nil
}

func (s *showService) HoldSeats(ctx context.Context, userID string, showID string, req *request.HoldSeatsRequest) (*response.HoldSeatsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	show, showTime, err := s.findShowAndTime(ctx, showID, req.ShowTimeID)
	if err != nil {
		return nil, err
	}
	if show.Status != entity.ShowStatusActive || showTime.Status != entity.ShowTimeStatusActive {
		return nil, repository.ErrShowInactive
	}

	screen, err := s.repo.Theater.FindScreen(ctx, show.TheaterID, show.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("get screen: %w", err)
	}
	if screen == nil {
		return nil, fmt.Errorf("screen %s: %w", show.ScreenID, repository.ErrNotFound)
	}

	if err := validateSeatNumbers(screen, req.Seats); err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(showTime.BookedSeats))
	for _, seat := range showTime.BookedSeats {
		booked[seat] = true
	}
	var conflicts []string
	for _, seat := range req.Seats {
		if booked[seat] {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) > 0 {
		return nil, &repository.SeatConflictError{Seats: conflicts}
	}

	heldByOthers, expiresAt, err := s.repo.Hold.HoldSeats(ctx, showTime.ID, userUUID, req.Seats)
	if err != nil {
		s.log.Error("Failed to hold seats", zap.Error(err))
		return nil, fmt.Errorf("hold seats: %w", err)
	}
	if len(heldByOthers) > 0 {
		return nil, &SeatsHeldError{Seats: heldByOthers}
	}

	s.log.Info("Seats held",
		zap.String("show_time_id", showTime.ID.String()),
		zap.String("user_id", userID),
		zap.Strings("seats", req.Seats))

	return &response.HoldSeatsResponse{
		ShowTimeID: showTime.ID.String(),
		Seats:      req.Seats,
		ExpiresAt:  expiresAt,
	}, nil
}

func (s *showService) ReleaseSeats(ctx context.Context, userID string, req *request.HoldSeatsRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := utils.ParseUUID(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}
	showTimeID, err := utils.ParseUUID(req.ShowTimeID)
	if err != nil {
		return fmt.Errorf("invalid show time ID format %s: %w", req.ShowTimeID, err)
	}

	if err := s.repo.Hold.ReleaseSeats(ctx, showTimeID, userUUID, req.Seats); err != nil {
		s.log.Error("Failed to release held seats", zap.Error(err))
		return fmt.Errorf("release held seats: %w", err)
	}
	return nil
}

func (s *showService) UpdateShow(ctx context.Context, id string, req *request.UpdateShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID format %s: %w", id, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("get show: %w", err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %s: %w", id, repository.ErrNotFound)
	}

	if req.Movie != nil {
		show.Movie.Title = req.Movie.Title
		show.Movie.PosterPath = req.Movie.PosterPath
		show.Movie.Duration = req.Movie.Duration
		show.Movie.Genre = req.Movie.Genre
		show.Movie.Rating = req.Movie.Rating
		show.Movie.Language = req.Movie.Language
	}
	if req.Format != "" {
		show.Format = entity.ShowFormat(req.Format)
	}
	if req.StartDate != "" {
		if show.StartDate, err = utils.ParseDate(req.StartDate); err != nil {
			return nil, fmt.Errorf("invalid start date %s: %w", req.StartDate, err)
		}
	}
	if req.EndDate != "" {
		if show.EndDate, err = utils.ParseDate(req.EndDate); err != nil {
			return nil, fmt.Errorf("invalid end date %s: %w", req.EndDate, err)
		}
	}
	if req.Status != "" {
		show.Status = entity.ShowStatus(req.Status)
	}
	show.UpdatedAt = time.Now()

	if err := s.repo.Show.Update(ctx, show); err != nil {
		s.log.Error("Failed to update show", zap.Error(err))
		return nil, fmt.Errorf("update show: %w", err)
	}

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) DeleteShow(ctx context.Context, id string) error {
	showID, err := utils.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid show ID format %s: %w", id, err)
	}

	if err := s.repo.Show.Delete(ctx, showID); err != nil {
		s.log.Error("Failed to delete show", zap.Error(err))
		return fmt.Errorf("delete show: %w", err)
	}

	s.log.Info("Show deleted", zap.String("show_id", id))
	return nil
}

// findShowAndTime resolves a show and one of its show-times, rejecting
// show-times that belong to a different show.
func (s *showService) findShowAndTime(ctx context.Context, showID, showTimeID string) (*entity.Show, *entity.ShowTime, error) {
	showUUID, err := utils.ParseUUID(showID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid show ID format %s: %w", showID, err)
	}
	showTimeUUID, err := utils.ParseUUID(showTimeID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid show time ID format %s: %w", showTimeID, err)
	}

	show, err := s.repo.Show.FindByID(ctx, showUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("get show: %w", err)
	}
	if show == nil {
		return nil, nil, fmt.Errorf("show %s: %w", showID, repository.ErrNotFound)
	}

	showTime, err := s.repo.Show.FindShowTime(ctx, showTimeUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("get show time: %w", err)
	}
	if showTime == nil || showTime.ShowID != show.ID {
		return nil, nil, fmt.Errorf("show time %s: %w", showTimeID, repository.ErrNotFound)
	}

	return show, showTime, nil
}

// validateSeatNumbers checks seat identifiers against the screen layout
// and rejects duplicates within the request.
func validateSeatNumbers(screen *entity.Screen, seats []string) error {
	seen := make(map[string]bool, len(seats))
	for _, seat := range seats {
		if seen[seat] {
			return fmt.Errorf("invalid selection: duplicate seat %s", seat)
		}
		seen[seat] = true

		row, col, err := entity.ParseSeatNumber(seat)
		if err != nil {
			return fmt.Errorf("invalid seat number %s: %w", seat, err)
		}
		if row[0] >= byte('A'+screen.Layout.Rows) || col > screen.Layout.SeatsPerRow {
			return fmt.Errorf("invalid seat number %s: outside screen layout", seat)
		}
	}
	return nil
}
