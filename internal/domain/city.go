package domain

import (
	"fmt"
	"strings"
)

// Validation errors for City. All wrap ErrValidation so callers can match
// the class without enumerating causes.
var (
	ErrCityNameEmpty          = fmt.Errorf("%w: city name cannot be empty", ErrValidation)
	ErrCityNameTooLong        = fmt.Errorf("%w: city name must be at most 50 characters", ErrValidation)
	ErrCityDescriptionTooLong = fmt.Errorf("%w: city description must be at most 200 characters", ErrValidation)
)

// Maximum lengths for city attributes, enforced both here and by the
// database schema.
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 200
)

// City is a top-level catalog resource grouping points of interest.
// The ID is assigned by the store on creation and is stable afterwards;
// names are not required to be unique.
type City struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	PointsOfInterest []PointOfInterest `json:"pointsOfInterest,omitempty"`
}

// NewCity creates a City with the given name and description. The ID is left
// zero until the store assigns one. Returns an error if validation fails.
func NewCity(name, description string) (*City, error) {
	city := &City{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}

	if err := city.Validate(); err != nil {
		return nil, err
	}

	return city, nil
}

// Validate checks that the City carries valid data.
func (c *City) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCityNameEmpty
	}
	if len(c.Name) > MaxNameLength {
		return ErrCityNameTooLong
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrCityDescriptionTooLong
	}
	return nil
}
