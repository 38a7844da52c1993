package store

import (
	"context"
	"database/sql"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
)

// CityStore defines the interface for city persistence.
type CityStore interface {
	// List retrieves the cities matching the filter, ordered by id ascending,
	// restricted to the given page. The metadata reflects the post-filter,
	// pre-pagination count; a page past the last one yields an empty slice
	// with metadata still describing the true totals.
	List(ctx context.Context, filter CityFilter, page Page) ([]domain.City, PaginationMetadata, error)

	// GetByID retrieves a city by its unique ID. When includePointsOfInterest
	// is true the city's points of interest are loaded in id order.
	// Returns ErrCityNotFound if the city does not exist.
	GetByID(ctx context.Context, id int64, includePointsOfInterest bool) (*domain.City, error)

	// Exists reports whether a city with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create saves a new city and assigns its ID. IDs are store-arbitrated,
	// monotonic, and never reused.
	Create(ctx context.Context, city *domain.City) error

	// Delete removes a city and, by cascade, all of its points of interest.
	// Returns ErrCityNotFound if the city does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new CityStore instance bound to the provided
	// transaction, so multiple operations commit atomically.
	WithTx(tx *sql.Tx) CityStore
}
