package partner

import (
	"strings"
	"time"

	"github.com/stockflow/backend/internal/domain/shared"
)

// Salesperson represents a sales actor that may own a dedicated stock
// location. LocationRef is a short code matched against location names by
// the location resolver; when empty the salesperson has no dedicated stock.
type Salesperson struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	Email       string `gorm:"type:varchar(200)"`
	LocationRef string `gorm:"type:varchar(50);index"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Salesperson) TableName() string {
	return "salespersons"
}

// NewSalesperson creates a new salesperson
func NewSalesperson(name, email, locationRef string) (*Salesperson, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Salesperson name cannot be empty")
	}
	locationRef = strings.TrimSpace(locationRef)
	if len(locationRef) > 50 {
		return nil, shared.NewDomainError("INVALID_LOCATION_REF", "Location reference cannot exceed 50 characters")
	}

	return &Salesperson{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		LocationRef:       locationRef,
		Active:            true,
	}, nil
}

// HasLocationRef reports whether the salesperson carries a location
// reference code
func (s *Salesperson) HasLocationRef() bool {
	return s.LocationRef != ""
}

// SetLocationRef updates the location reference code
func (s *Salesperson) SetLocationRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if len(ref) > 50 {
		return shared.NewDomainError("INVALID_LOCATION_REF", "Location reference cannot exceed 50 characters")
	}
	s.LocationRef = ref
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Deactivate marks the salesperson as inactive
func (s *Salesperson) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
