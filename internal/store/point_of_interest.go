package store

import (
	"context"
	"database/sql"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
)

// PointOfInterestStore defines the interface for point of interest
// persistence. All lookups are scoped to the owning city; callers are
// expected to verify city existence first (see the catalog service).
type PointOfInterestStore interface {
	// ListForCity retrieves all points of interest belonging to the city,
	// ordered by id ascending.
	ListForCity(ctx context.Context, cityID int64) ([]domain.PointOfInterest, error)

	// GetForCity retrieves a single point of interest under the given city.
	// Returns ErrPointOfInterestNotFound if no such entity exists under that
	// city, including when the id exists but belongs to another city.
	GetForCity(ctx context.Context, cityID, id int64) (*domain.PointOfInterest, error)

	// Create saves a new point of interest under poi.CityID and assigns its
	// ID. IDs are store-arbitrated, monotonic, and never reused.
	Create(ctx context.Context, poi *domain.PointOfInterest) error

	// Update replaces the mutable fields (name, description) of an existing
	// point of interest. Returns ErrPointOfInterestNotFound if the entity
	// does not exist under poi.CityID.
	Update(ctx context.Context, poi *domain.PointOfInterest) error

	// Delete removes a point of interest from its city's collection.
	// Returns ErrPointOfInterestNotFound if the entity does not exist under
	// that city.
	Delete(ctx context.Context, cityID, id int64) error

	// WithTx returns a new PointOfInterestStore instance bound to the
	// provided transaction.
	WithTx(tx *sql.Tx) PointOfInterestStore
}
