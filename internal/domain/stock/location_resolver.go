package stock

import (
	"context"

	"go.uber.org/zap"
)

// LocationResolver maps a salesperson to their dedicated stock location.
// Resolution never fails the calling workflow: any condition that prevents
// an unambiguous match yields (nil, false) and the caller proceeds without
// a dedicated location.
type LocationResolver struct {
	locationRepo LocationRepository
	logger       *zap.Logger
}

// NewLocationResolver creates a new location resolver
func NewLocationResolver(locationRepo LocationRepository, logger *zap.Logger) *LocationResolver {
	return &LocationResolver{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// Resolve returns the dedicated location for the salesperson. A match
// requires a non-empty location reference and exactly one location whose
// name equals it; zero or multiple candidates resolve to none.
func (r *LocationResolver) Resolve(ctx context.Context, sp SalespersonInfo) (*StockLocation, bool) {
	if sp.LocationRef == "" {
		return nil, false
	}

	candidates, err := r.locationRepo.FindByName(ctx, sp.LocationRef)
	if err != nil {
		r.logger.Warn("Location lookup failed, treating salesperson as having no dedicated location",
			zap.String("salesperson", sp.Name),
			zap.String("location_ref", sp.LocationRef),
			zap.Error(err))
		return nil, false
	}

	if len(candidates) != 1 {
		r.logger.Debug("Location reference did not match exactly one location",
			zap.String("salesperson", sp.Name),
			zap.String("location_ref", sp.LocationRef),
			zap.Int("matches", len(candidates)))
		return nil, false
	}

	loc := candidates[0]
	return &loc, true
}
