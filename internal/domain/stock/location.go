package stock

import (
	"strings"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// PathSeparator separates segments in a location's full path
const PathSeparator = "/"

// StockLocation is a named node in the location hierarchy. FullPath is the
// slash-joined chain of ancestor names, e.g. "WH/Commercials/Alice".
type StockLocation struct {
	shared.BaseEntity
	Name     string     `gorm:"type:varchar(100);not null;index"`
	FullPath string     `gorm:"type:varchar(500);not null;uniqueIndex"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (StockLocation) TableName() string {
	return "stock_locations"
}

// NewStockLocation creates a location under the given parent. A nil parent
// creates a root location whose full path is its own name.
func NewStockLocation(name string, parent *StockLocation) (*StockLocation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if strings.Contains(name, PathSeparator) {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot contain the path separator")
	}

	loc := &StockLocation{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		FullPath:   name,
	}
	if parent != nil {
		loc.FullPath = parent.FullPath + PathSeparator + name
		parentID := parent.ID
		loc.ParentID = &parentID
	}
	return loc, nil
}

// IsRoot reports whether the location has no parent
func (l *StockLocation) IsRoot() bool {
	return l.ParentID == nil
}

// IsDescendantOf reports whether the location sits underneath the given path
func (l *StockLocation) IsDescendantOf(path string) bool {
	return strings.HasPrefix(l.FullPath, path+PathSeparator)
}
