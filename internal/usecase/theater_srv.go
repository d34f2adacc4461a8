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

	"go.uber.org/zap"
)

type TheaterService interface {
	// Public endpoints
	GetTheater(ctx context.Context, id string) (*response.TheaterDetailResponse, error)
	ListTheaters(ctx context.Context, city string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TheaterResponse], error)

	// Admin endpoints
	CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterDetailResponse, error)
	UpdateTheater(ctx context.Context, id string, req *request.UpdateTheaterRequest) (*response.TheaterResponse, error)
	DeleteTheater(ctx context.Context, id string) error
}

type theaterService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTheaterService(repo *repository.Repository, log *zap.Logger) TheaterService {
	return &theaterService{
		repo: repo,
		log:  log.With(zap.String("service", "theater")),
	}
}

func (s *theaterService) CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterDetailResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create theater validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	theater := &entity.Theater{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Pincode:   req.Pincode,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Amenities: req.Amenities,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    entity.TheaterStatusActive,
	}
	theater.Base = entity.NewBase()

	for _, sc := range req.Screens {
		layout, err := buildSeatLayout(&sc.Layout)
		if err != nil {
			return nil, err
		}

		screen := entity.Screen{
			TheaterID: theater.ID,
			ScreenID:  sc.ScreenID,
			Name:      sc.Name,
			Capacity:  layout.Rows * layout.SeatsPerRow,
			Layout:    *layout,
		}
		screen.BaseSimple = entity.NewBaseSimple()
		theater.Screens = append(theater.Screens, screen)
	}

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		s.log.Error("Failed to create theater", zap.Error(err))
		return nil, fmt.Errorf("create theater: %w", err)
	}

	s.log.Info("Theater created",
		zap.String("theater_id", theater.ID.String()),
		zap.Int("screens", len(theater.Screens)))

	resp := response.TheaterToDetailResponse(theater)
	return &resp, nil
}

func (s *theaterService) GetTheater(ctx context.Context, id string) (*response.TheaterDetailResponse, error) {
	theaterID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", id, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("get theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", id, repository.ErrNotFound)
	}

	resp := response.TheaterToDetailResponse(theater)
	return &resp, nil
}

func (s *theaterService) ListTheaters(ctx context.Context, city string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TheaterResponse], error) {
	theaters, err := s.repo.Theater.FindAll(ctx, city, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list theaters: %w", err)
	}

	total, err := s.repo.Theater.Count(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("count theaters: %w", err)
	}

	items := make([]response.TheaterResponse, len(theaters))
	for i, t := range theaters {
		items[i] = response.TheaterToResponse(t)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *theaterService) UpdateTheater(ctx context.Context, id string, req *request.UpdateTheaterRequest) (*response.TheaterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	theaterID, err := utils.ParseUUID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", id, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("get theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", id, repository.ErrNotFound)
	}

	if req.Name != "" {
		theater.Name = req.Name
	}
	if req.Address != "" {
		theater.Address = req.Address
	}
	if req.City != "" {
		theater.City = req.City
	}
	if req.State != "" {
		theater.State = req.State
	}
	if req.Pincode != "" {
		theater.Pincode = req.Pincode
	}
	if req.Amenities != nil {
		theater.Amenities = req.Amenities
	}
	if req.Phone != "" {
		theater.Phone = req.Phone
	}
	if req.Email != "" {
		theater.Email = req.Email
	}
	if req.Status != "" {
		theater.Status = entity.TheaterStatus(req.Status)
	}
	theater.UpdatedAt = time.Now()

	if err := s.repo.Theater.Update(ctx, theater); err != nil {
		s.log.Error("Failed to update theater", zap.Error(err))
		return nil, fmt.Errorf("update theater: %w", err)
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) DeleteTheater(ctx context.Context, id string) error {
	theaterID, err := utils.ParseUUID(id)
	if err != nil {
		return fmt.Errorf("invalid theater ID format %s: %w", id, err)
	}

	if err := s.repo.Theater.Delete(ctx, theaterID); err != nil {
		s.log.Error("Failed to delete theater", zap.Error(err))
		return fmt.Errorf("delete theater: %w", err)
	}

	s.log.Info("Theater deleted", zap.String("theater_id", id))
	return nil
}

// buildSeatLayout converts the layout input and checks that every row
// claimed by a seat type actually exists on the screen.
func buildSeatLayout(in *request.SeatLayoutInput) (*entity.SeatLayout, error) {
	layout := &entity.SeatLayout{
		Rows:        in.Rows,
		SeatsPerRow: in.SeatsPerRow,
	}

	for _, st := range in.SeatTypes {
		for _, row := range st.Rows {
			if row[0] < 'A' || row[0] >= byte('A'+in.Rows) {
				return nil, fmt.Errorf("invalid seat row %q for a %d-row screen", row, in.Rows)
			}
		}
		layout.SeatTypes = append(layout.SeatTypes, entity.SeatTypeRows{
			Type:  entity.SeatType(st.Type),
			Price: st.Price,
			Rows:  st.Rows,
		})
	}

	return layout, nil
}
