package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// PostgresCityStore implements the store.CityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCityStore creates a new PostgreSQL implementation of the
// CityStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, the
// default logger is used.
func NewPostgresCityStore(db store.DBTX, logger *slog.Logger) *PostgresCityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCityStore{
		db:     db,
		logger: logger.With(slog.String("component", "city_store")),
	}
}

// Ensure PostgresCityStore implements store.CityStore interface
var _ store.CityStore = (*PostgresCityStore)(nil)

// WithTx implements store.CityStore.WithTx
func (s *PostgresCityStore) WithTx(tx *sql.Tx) store.CityStore {
	return &PostgresCityStore{
		db:     tx,
		logger: s.logger,
	}
}

// buildFilterClause translates the filter into a WHERE clause and its
// arguments, mirroring store.CityFilter.Match: exact case-insensitive name
// match, case-insensitive substring search over name or description, both
// combined with AND.
func buildFilterClause(filter store.CityFilter) (string, []interface{}) {
	f := filter.Normalized()

	var conditions []string
	var args []interface{}

	if f.Name != "" {
		args = append(args, f.Name)
		conditions = append(conditions, fmt.Sprintf("LOWER(name) = LOWER($%d)", len(args)))
	}

	if f.SearchQuery != "" {
		args = append(args, "%"+f.SearchQuery+"%")
		n := len(args)
		conditions = append(
			conditions,
			fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n),
		)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List implements store.CityStore.List
func (s *PostgresCityStore) List(
	ctx context.Context,
	filter store.CityFilter,
	page store.Page,
) ([]domain.City, store.PaginationMetadata, error) {
	where, args := buildFilterClause(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM cities" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, store.PaginationMetadata{}, MapError(err)
	}

	listQuery := fmt.Sprintf(
		"SELECT id, name, description FROM cities%s ORDER BY id LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit(), page.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, store.PaginationMetadata{}, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.WarnContext(ctx, "failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	cities := []domain.City{}
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, store.PaginationMetadata{}, MapError(err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.PaginationMetadata{}, MapError(err)
	}

	return cities, store.NewPaginationMetadata(total, page), nil
}

// GetByID implements store.CityStore.GetByID
func (s *PostgresCityStore) GetByID(
	ctx context.Context,
	id int64,
	includePointsOfInterest bool,
) (*domain.City, error) {
	var c domain.City
	err := s.db.QueryRowContext(
		ctx,
		"SELECT id, name, description FROM cities WHERE id = $1",
		id,
	).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrCityNotFound
		}
		return nil, MapError(err)
	}

	if includePointsOfInterest {
		pois, err := s.loadPointsOfInterest(ctx, id)
		if err != nil {
			return nil, err
		}
		c.PointsOfInterest = pois
	}

	return &c, nil
}

func (s *PostgresCityStore) loadPointsOfInterest(
	ctx context.Context,
	cityID int64,
) ([]domain.PointOfInterest, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT id, city_id, name, description FROM points_of_interest WHERE city_id = $1 ORDER BY id",
		cityID,
	)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.WarnContext(ctx, "failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	pois := []domain.PointOfInterest{}
	for rows.Next() {
		var p domain.PointOfInterest
		if err := rows.Scan(&p.ID, &p.CityID, &p.Name, &p.Description); err != nil {
			return nil, MapError(err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return pois, nil
}

// Exists implements store.CityStore.Exists
func (s *PostgresCityStore) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM cities WHERE id = $1)",
		id,
	).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// Create implements store.CityStore.Create
func (s *PostgresCityStore) Create(ctx context.Context, city *domain.City) error {
	if err := city.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err := s.db.QueryRowContext(
		ctx,
		"INSERT INTO cities (name, description) VALUES ($1, $2) RETURNING id",
		city.Name, city.Description,
	).Scan(&city.ID)
	if err != nil {
		return MapError(err)
	}

	s.logger.DebugContext(ctx, "created city", slog.Int64("city_id", city.ID))
	return nil
}

// Delete implements store.CityStore.Delete
// Points of interest under the city are removed by the ON DELETE CASCADE
// constraint on points_of_interest.city_id.
func (s *PostgresCityStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cities WHERE id = $1", id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCityNotFound)
}
