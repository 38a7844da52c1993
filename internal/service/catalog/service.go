// Package catalog implements the core application service: listing and
// mutating cities and their points of interest. All mutations run through a
// store.TxRunner so each request commits exactly once; reads go straight to
// the stores.
package catalog

import (
	"context"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// Service exposes the catalog operations consumed by the HTTP layer.
type Service interface {
	// ListCities returns the cities matching the filter, paginated. The
	// metadata always reflects the post-filter totals, even when the page is
	// past the end.
	ListCities(ctx context.Context, filter store.CityFilter, page store.Page) ([]domain.City, store.PaginationMetadata, error)

	// GetCity returns a city by id, optionally with its points of interest.
	GetCity(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error)

	// CreateCity validates and persists a new city, returning it with its
	// assigned id.
	CreateCity(ctx context.Context, name, description string) (*domain.City, error)

	// DeleteCity removes a city and, by cascade, its points of interest.
	DeleteCity(ctx context.Context, id int64) error

	// ListPointsOfInterest returns all points of interest of a city.
	// Returns ErrCityNotFound when the city does not exist.
	ListPointsOfInterest(ctx context.Context, cityID int64) ([]domain.PointOfInterest, error)

	// GetPointOfInterest returns a single point of interest scoped to the
	// city. Returns ErrCityNotFound when the city does not exist and
	// ErrPointOfInterestNotFound when the id is absent under that city.
	GetPointOfInterest(ctx context.Context, cityID, id int64) (*domain.PointOfInterest, error)

	// CreatePointOfInterest validates and persists a new point of interest
	// under the city, returning it with its assigned id.
	CreatePointOfInterest(ctx context.Context, cityID int64, name, description string) (*domain.PointOfInterest, error)

	// UpdatePointOfInterest replaces the name and description of an existing
	// point of interest. The description is replaced even when empty.
	UpdatePointOfInterest(ctx context.Context, cityID, id int64, name, description string) (*domain.PointOfInterest, error)

	// PatchPointOfInterest merges the non-nil fields over a copy of the
	// current state, validates the result, and persists it only if valid.
	PatchPointOfInterest(ctx context.Context, cityID, id int64, name, description *string) (*domain.PointOfInterest, error)

	// DeletePointOfInterest removes a point of interest and raises a
	// notification after the deletion has committed.
	DeletePointOfInterest(ctx context.Context, cityID, id int64) error
}
