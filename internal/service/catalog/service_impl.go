package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/mail"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// service implements the Service interface.
type service struct {
	cities   store.CityStore
	pois     store.PointOfInterestStore
	tx       store.TxRunner
	notifier mail.Notifier
	logger   *slog.Logger
}

// NewService creates a catalog Service. All dependencies except the logger
// are required; a nil logger falls back to the default.
func NewService(
	cities store.CityStore,
	pois store.PointOfInterestStore,
	tx store.TxRunner,
	notifier mail.Notifier,
	logger *slog.Logger,
) (Service, error) {
	if cities == nil {
		return nil, errors.New("city store cannot be nil")
	}
	if pois == nil {
		return nil, errors.New("point of interest store cannot be nil")
	}
	if tx == nil {
		return nil, errors.New("transaction runner cannot be nil")
	}
	if notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		cities:   cities,
		pois:     pois,
		tx:       tx,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "catalog_service")),
	}, nil
}

func (s *service) ListCities(
	ctx context.Context,
	filter store.CityFilter,
	page store.Page,
) ([]domain.City, store.PaginationMetadata, error) {
	cities, meta, err := s.cities.List(ctx, filter.Normalized(), page)
	if err != nil {
		return nil, store.PaginationMetadata{}, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, meta, nil
}

func (s *service) GetCity(
	ctx context.Context,
	id int64,
	includePointsOfInterest bool,
) (*domain.City, error) {
	city, err := s.cities.GetByID(ctx, id, includePointsOfInterest)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to get city %d: %w", id, err)
	}
	return city, nil
}

func (s *service) CreateCity(ctx context.Context, name, description string) (*domain.City, error) {
	city, err := domain.NewCity(name, description)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, stores store.Stores) error {
		return stores.Cities.Create(ctx, city)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create city: %w", err)
	}

	s.logger.InfoContext(ctx, "city created",
		slog.Int64("city_id", city.ID),
		slog.String("name", city.Name))
	return city, nil
}

func (s *service) DeleteCity(ctx context.Context, id int64) error {
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, stores store.Stores) error {
		return stores.Cities.Delete(ctx, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrCityNotFound
		}
		return fmt.Errorf("failed to delete city %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "city deleted", slog.Int64("city_id", id))
	return nil
}

// guardCity verifies the city exists before a point of interest operation.
func (s *service) guardCity(ctx context.Context, cities store.CityStore, cityID int64) error {
	exists, err := cities.Exists(ctx, cityID)
	if err != nil {
		return fmt.Errorf("failed to check city %d: %w", cityID, err)
	}
	if !exists {
		return ErrCityNotFound
	}
	return nil
}

func (s *service) ListPointsOfInterest(
	ctx context.Context,
	cityID int64,
) ([]domain.PointOfInterest, error) {
	if err := s.guardCity(ctx, s.cities, cityID); err != nil {
		return nil, err
	}

	pois, err := s.pois.ListForCity(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list points of interest for city %d: %w", cityID, err)
	}
	return pois, nil
}

func (s *service) GetPointOfInterest(
	ctx context.Context,
	cityID, id int64,
) (*domain.PointOfInterest, error) {
	if err := s.guardCity(ctx, s.cities, cityID); err != nil {
		return nil, err
	}

	poi, err := s.pois.GetForCity(ctx, cityID, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrPointOfInterestNotFound
		}
		return nil, fmt.Errorf("failed to get point of interest %d: %w", id, err)
	}
	return poi, nil
}

func (s *service) CreatePointOfInterest(
	ctx context.Context,
	cityID int64,
	name, description string,
) (*domain.PointOfInterest, error) {
	poi, err := domain.NewPointOfInterest(cityID, name, description)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, stores store.Stores) error {
		if err := s.guardCity(ctx, stores.Cities, cityID); err != nil {
			return err
		}
		return stores.PointsOfInterest.Create(ctx, poi)
	})
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to create point of interest: %w", err)
	}

	s.logger.InfoContext(ctx, "point of interest created",
		slog.Int64("city_id", cityID),
		slog.Int64("poi_id", poi.ID),
		slog.String("name", poi.Name))
	return poi, nil
}

func (s *service) UpdatePointOfInterest(
	ctx context.Context,
	cityID, id int64,
	name, description string,
) (*domain.PointOfInterest, error) {
	poi, err := domain.NewPointOfInterest(cityID, name, description)
	if err != nil {
		return nil, err
	}
	poi.ID = id

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, stores store.Stores) error {
		if err := s.guardCity(ctx, stores.Cities, cityID); err != nil {
			return err
		}
		return stores.PointsOfInterest.Update(ctx, poi)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update point of interest %d: %w", id, err)
	}

	return poi, nil
}

func (s *service) PatchPointOfInterest(
	ctx context.Context,
	cityID, id int64,
	name, description *string,
) (*domain.PointOfInterest, error) {
	var patched *domain.PointOfInterest

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, stores store.Stores) error {
		if err := s.guardCity(ctx, stores.Cities, cityID); err != nil {
			return err
		}

		current, err := stores.PointsOfInterest.GetForCity(ctx, cityID, id)
		if err != nil {
			return err
		}

		// Merge over a copy so an invalid patch never mutates stored state.
		merged := *current
		if name != nil {
			merged.Name = *name
		}
		if description != nil {
			merged.Description = *description
		}
		if err := merged.Validate(); err != nil {
			return err
		}

		if err := stores.PointsOfInterest.Update(ctx, &merged); err != nil {
			return err
		}
		patched = &merged
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to patch point of interest %d: %w", id, err)
	}

	return patched, nil
}

func (s *service) DeletePointOfInterest(ctx context.Context, cityID, id int64) error {
	var deleted domain.PointOfInterest

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context, stores store.Stores) error {
		if err := s.guardCity(ctx, stores.Cities, cityID); err != nil {
			return err
		}

		poi, err := stores.PointsOfInterest.GetForCity(ctx, cityID, id)
		if err != nil {
			return err
		}
		deleted = *poi

		return stores.PointsOfInterest.Delete(ctx, cityID, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("failed to delete point of interest %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "point of interest deleted",
		slog.Int64("city_id", cityID),
		slog.Int64("poi_id", id))

	// Raised only after the deletion has committed.
	s.notifier.Notify(ctx,
		"Point of interest deleted.",
		fmt.Sprintf("Point of interest %s with id %d was deleted.", deleted.Name, deleted.ID))
	return nil
}
