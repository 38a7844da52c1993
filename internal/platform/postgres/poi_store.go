package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// PostgresPointOfInterestStore implements the store.PointOfInterestStore
// interface using a PostgreSQL database as the storage backend.
type PostgresPointOfInterestStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPointOfInterestStore creates a new PostgreSQL implementation of
// the PointOfInterestStore interface. If logger is nil, the default logger is
// used.
func NewPostgresPointOfInterestStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresPointOfInterestStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPointOfInterestStore{
		db:     db,
		logger: logger.With(slog.String("component", "poi_store")),
	}
}

// Ensure PostgresPointOfInterestStore implements store.PointOfInterestStore interface
var _ store.PointOfInterestStore = (*PostgresPointOfInterestStore)(nil)

// WithTx implements store.PointOfInterestStore.WithTx
func (s *PostgresPointOfInterestStore) WithTx(tx *sql.Tx) store.PointOfInterestStore {
	return &PostgresPointOfInterestStore{
		db:     tx,
		logger: s.logger,
	}
}

// ListForCity implements store.PointOfInterestStore.ListForCity
func (s *PostgresPointOfInterestStore) ListForCity(
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

// GetForCity implements store.PointOfInterestStore.GetForCity
func (s *PostgresPointOfInterestStore) GetForCity(
	ctx context.Context,
	cityID, id int64,
) (*domain.PointOfInterest, error) {
	var p domain.PointOfInterest
	err := s.db.QueryRowContext(
		ctx,
		"SELECT id, city_id, name, description FROM points_of_interest WHERE city_id = $1 AND id = $2",
		cityID, id,
	).Scan(&p.ID, &p.CityID, &p.Name, &p.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrPointOfInterestNotFound
		}
		return nil, MapError(err)
	}
	return &p, nil
}

// Create implements store.PointOfInterestStore.Create
func (s *PostgresPointOfInterestStore) Create(
	ctx context.Context,
	poi *domain.PointOfInterest,
) error {
	if err := poi.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err := s.db.QueryRowContext(
		ctx,
		"INSERT INTO points_of_interest (city_id, name, description) VALUES ($1, $2, $3) RETURNING id",
		poi.CityID, poi.Name, poi.Description,
	).Scan(&poi.ID)
	if err != nil {
		return MapError(err)
	}

	s.logger.DebugContext(ctx, "created point of interest",
		slog.Int64("city_id", poi.CityID),
		slog.Int64("poi_id", poi.ID))
	return nil
}

// Update implements store.PointOfInterestStore.Update
func (s *PostgresPointOfInterestStore) Update(
	ctx context.Context,
	poi *domain.PointOfInterest,
) error {
	if err := poi.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(
		ctx,
		"UPDATE points_of_interest SET name = $1, description = $2 WHERE city_id = $3 AND id = $4",
		poi.Name, poi.Description, poi.CityID, poi.ID,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPointOfInterestNotFound)
}

// Delete implements store.PointOfInterestStore.Delete
func (s *PostgresPointOfInterestStore) Delete(ctx context.Context, cityID, id int64) error {
	result, err := s.db.ExecContext(
		ctx,
		"DELETE FROM points_of_interest WHERE city_id = $1 AND id = $2",
		cityID, id,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPointOfInterestNotFound)
}
