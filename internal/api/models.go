package api

import (
	"github.com/cityinfohq/cityinfo-api/internal/domain"
)

// CityResponse is the wire representation of a city. PointsOfInterest and
// NumberOfPointsOfInterest appear only when the caller asked for the child
// collection.
type CityResponse struct {
	ID                       int64                     `json:"id"`
	Name                     string                    `json:"name"`
	Description              string                    `json:"description,omitempty"`
	NumberOfPointsOfInterest *int                      `json:"numberOfPointsOfInterest,omitempty"`
	PointsOfInterest         []PointOfInterestResponse `json:"pointsOfInterest,omitempty"`
}

// PointOfInterestResponse is the wire representation of a point of interest.
// The owning city is implied by the URL, so no city id is serialized.
type PointOfInterestResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// newCityResponse converts a domain city. When includePointsOfInterest is
// set, the child collection and its count are included even if empty.
func newCityResponse(city *domain.City, includePointsOfInterest bool) CityResponse {
	resp := CityResponse{
		ID:          city.ID,
		Name:        city.Name,
		Description: city.Description,
	}

	if includePointsOfInterest {
		pois := make([]PointOfInterestResponse, 0, len(city.PointsOfInterest))
		for i := range city.PointsOfInterest {
			pois = append(pois, newPointOfInterestResponse(&city.PointsOfInterest[i]))
		}
		count := len(pois)
		resp.NumberOfPointsOfInterest = &count
		resp.PointsOfInterest = pois
	}

	return resp
}

func newPointOfInterestResponse(poi *domain.PointOfInterest) PointOfInterestResponse {
	return PointOfInterestResponse{
		ID:          poi.ID,
		Name:        poi.Name,
		Description: poi.Description,
	}
}

// CreateCityRequest is the payload for creating a city.
type CreateCityRequest struct {
	Name        string `json:"name"        validate:"required,max=50"`
	Description string `json:"description" validate:"max=200"`
}

// CreatePointOfInterestRequest is the payload for creating a point of
// interest.
type CreatePointOfInterestRequest struct {
	Name        string `json:"name"        validate:"required,max=50"`
	Description string `json:"description" validate:"max=200"`
}

// UpdatePointOfInterestRequest is the payload for a full replace. An omitted
// description clears the stored one.
type UpdatePointOfInterestRequest struct {
	Name        string `json:"name"        validate:"required,max=50"`
	Description string `json:"description" validate:"max=200"`
}

// PatchPointOfInterestRequest is the payload for a partial update. Only the
// fields present in the body are changed.
type PatchPointOfInterestRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
}
