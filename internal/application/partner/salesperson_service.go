package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/shared"
)

// CreateSalespersonRequest is the request to create a salesperson
type CreateSalespersonRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email"`
	LocationRef string `json:"location_ref"`
}

// UpdateLocationRefRequest updates the location reference code
type UpdateLocationRefRequest struct {
	LocationRef string `json:"location_ref"`
}

// SalespersonResponse is the API representation of a salesperson
type SalespersonResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	LocationRef string    `json:"location_ref,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToSalespersonResponse converts a salesperson to its API representation
func ToSalespersonResponse(sp *partner.Salesperson) *SalespersonResponse {
	return &SalespersonResponse{
		ID:          sp.ID,
		Name:        sp.Name,
		Email:       sp.Email,
		LocationRef: sp.LocationRef,
		Active:      sp.Active,
		CreatedAt:   sp.CreatedAt,
	}
}

// SalespersonService handles salesperson management
type SalespersonService struct {
	salespersonRepo partner.SalespersonRepository
	logger          *zap.Logger
}

// NewSalespersonService creates a new SalespersonService
func NewSalespersonService(salespersonRepo partner.SalespersonRepository, logger *zap.Logger) *SalespersonService {
	return &SalespersonService{
		salespersonRepo: salespersonRepo,
		logger:          logger,
	}
}

// Create creates a salesperson
func (s *SalespersonService) Create(ctx context.Context, req CreateSalespersonRequest) (*SalespersonResponse, error) {
	sp, err := partner.NewSalesperson(req.Name, req.Email, req.LocationRef)
	if err != nil {
		return nil, err
	}

	if err := s.salespersonRepo.Save(ctx, sp); err != nil {
		return nil, err
	}

	s.logger.Info("salesperson created",
		zap.String("name", sp.Name),
		zap.String("location_ref", sp.LocationRef))

	return ToSalespersonResponse(sp), nil
}

// UpdateLocationRef updates the salesperson's location reference code
func (s *SalespersonService) UpdateLocationRef(ctx context.Context, id uuid.UUID, ref string) (*SalespersonResponse, error) {
	sp, err := s.salespersonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sp.SetLocationRef(ref); err != nil {
		return nil, err
	}
	if err := s.salespersonRepo.Save(ctx, sp); err != nil {
		return nil, err
	}

	return ToSalespersonResponse(sp), nil
}

// GetByID retrieves a salesperson by ID
func (s *SalespersonService) GetByID(ctx context.Context, id uuid.UUID) (*SalespersonResponse, error) {
	sp, err := s.salespersonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSalespersonResponse(sp), nil
}

// List retrieves salespersons with pagination
func (s *SalespersonService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*SalespersonResponse], error) {
	salespersons, err := s.salespersonRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.salespersonRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*SalespersonResponse, 0, len(salespersons))
	for i := range salespersons {
		responses = append(responses, ToSalespersonResponse(&salespersons[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
