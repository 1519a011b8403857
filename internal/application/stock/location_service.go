package stock

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
)

// LocationService handles stock location management
type LocationService struct {
	locationRepo stock.LocationRepository
	logger       *zap.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo stock.LocationRepository, logger *zap.Logger) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// Create creates a location, nested under the parent when one is given
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	var parent *stock.StockLocation
	if req.ParentID != nil {
		var err error
		parent, err = s.locationRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
	}

	loc, err := stock.NewStockLocation(req.Name, parent)
	if err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}

	s.logger.Info("location created", zap.String("path", loc.FullPath))

	return ToLocationResponse(loc), nil
}

// GetByID retrieves a location by ID
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToLocationResponse(loc), nil
}

// List retrieves locations with pagination
func (s *LocationService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*LocationResponse], error) {
	locations, err := s.locationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.locationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*LocationResponse, 0, len(locations))
	for i := range locations {
		responses = append(responses, ToLocationResponse(&locations[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
