package domain

import (
	"fmt"
	"strings"
)

// Validation errors for PointOfInterest. All wrap ErrValidation so callers
// can match the class without enumerating causes.
var (
	ErrPointOfInterestNameEmpty          = fmt.Errorf("%w: point of interest name cannot be empty", ErrValidation)
	ErrPointOfInterestNameTooLong        = fmt.Errorf("%w: point of interest name must be at most 50 characters", ErrValidation)
	ErrPointOfInterestDescriptionTooLong = fmt.Errorf("%w: point of interest description must be at most 200 characters", ErrValidation)
	ErrPointOfInterestCityIDEmpty        = fmt.Errorf("%w: point of interest must reference a city", ErrValidation)
)

// PointOfInterest is a child resource scoped to exactly one city. CityID
// identifies the owning city; the city's lifetime bounds the point of
// interest's lifetime (deleting the city cascades).
type PointOfInterest struct {
	ID          int64  `json:"id"`
	CityID      int64  `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewPointOfInterest creates a PointOfInterest under the given city. The ID
// is left zero until the store assigns one. Returns an error if validation
// fails.
func NewPointOfInterest(cityID int64, name, description string) (*PointOfInterest, error) {
	poi := &PointOfInterest{
		CityID:      cityID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}

	if err := poi.Validate(); err != nil {
		return nil, err
	}

	return poi, nil
}

// Validate checks that the PointOfInterest carries valid data.
func (p *PointOfInterest) Validate() error {
	if p.CityID <= 0 {
		return ErrPointOfInterestCityIDEmpty
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrPointOfInterestNameEmpty
	}
	if len(p.Name) > MaxNameLength {
		return ErrPointOfInterestNameTooLong
	}
	if len(p.Description) > MaxDescriptionLength {
		return ErrPointOfInterestDescriptionTooLong
	}
	return nil
}
