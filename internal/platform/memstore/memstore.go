// Package memstore provides an in-memory implementation of the store
// interfaces. It backs local development under the memory database driver
// and gives the service layer a fast, deterministic store for tests.
package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// Store holds the catalog in memory. It implements store.TxRunner directly;
// the store interfaces are exposed through Cities and PointsOfInterest.
//
// Transactions are simulated: RunInTransaction holds the store lock for the
// duration of the callback and restores a snapshot on rollback. ID counters
// are not restored, so assigned IDs are never reused even across rollbacks.
type Store struct {
	mu sync.Mutex

	cities map[int64]domain.City
	pois   map[int64]domain.PointOfInterest

	nextCityID int64
	nextPOIID  int64

	// commitErr, when set, makes the next commit fail. Test hook.
	commitErr error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		cities: make(map[int64]domain.City),
		pois:   make(map[int64]domain.PointOfInterest),
	}
}

// NewSeeded creates an in-memory store pre-populated with a small sample
// catalog, used by the memory database driver for local development.
func NewSeeded() *Store {
	s := New()

	seed := []struct {
		name        string
		description string
		pois        [][2]string
	}{
		{
			name:        "New York City",
			description: "The one with that big park.",
			pois: [][2]string{
				{"Central Park", "The most visited urban park in the United States."},
				{"Empire State Building", "A 102-story skyscraper located in Midtown Manhattan."},
			},
		},
		{
			name:        "Antwerp",
			description: "The one with the cathedral that was never really finished.",
			pois: [][2]string{
				{"Cathedral of Our Lady", "A Gothic style cathedral, conceived by architects Jan and Pieter Appelmans."},
				{"Antwerp Central Station", "The finest example of railway architecture in Belgium."},
			},
		},
		{
			name:        "Paris",
			description: "The one with that big tower.",
			pois: [][2]string{
				{"Eiffel Tower", "A wrought iron lattice tower on the Champ de Mars, named after engineer Gustave Eiffel."},
				{"The Louvre", "The world's largest museum."},
			},
		},
	}

	ctx := context.Background()
	for _, c := range seed {
		city := &domain.City{Name: c.name, Description: c.description}
		if err := s.Cities().Create(ctx, city); err != nil {
			panic(fmt.Sprintf("memstore seed: %v", err))
		}
		for _, p := range c.pois {
			poi := &domain.PointOfInterest{CityID: city.ID, Name: p[0], Description: p[1]}
			if err := s.PointsOfInterest().Create(ctx, poi); err != nil {
				panic(fmt.Sprintf("memstore seed: %v", err))
			}
		}
	}

	return s
}

// Cities returns the store.CityStore view of the catalog.
func (s *Store) Cities() store.CityStore {
	return &cityStore{store: s}
}

// PointsOfInterest returns the store.PointOfInterestStore view of the catalog.
func (s *Store) PointsOfInterest() store.PointOfInterestStore {
	return &poiStore{store: s}
}

// FailNextCommit makes commits fail with the given error until cleared with
// a nil argument. Used by tests to exercise rollback behavior.
func (s *Store) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

// Ensure Store implements store.TxRunner interface
var _ store.TxRunner = (*Store)(nil)

// RunInTransaction implements store.TxRunner.RunInTransaction
// The callback runs under the store lock against transactional views; any
// error restores the pre-transaction snapshot.
func (s *Store) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, stores store.Stores) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapCities := make(map[int64]domain.City, len(s.cities))
	for id, c := range s.cities {
		snapCities[id] = c
	}
	snapPOIs := make(map[int64]domain.PointOfInterest, len(s.pois))
	for id, p := range s.pois {
		snapPOIs[id] = p
	}

	restore := func() {
		s.cities = snapCities
		s.pois = snapPOIs
	}

	stores := store.Stores{
		Cities:           &cityStore{store: s, inTx: true},
		PointsOfInterest: &poiStore{store: s, inTx: true},
	}

	if err := fn(ctx, stores); err != nil {
		restore()
		return err
	}

	if s.commitErr != nil {
		restore()
		return fmt.Errorf("%w: commit: %v", store.ErrTransactionFailed, s.commitErr)
	}

	return nil
}

// lock acquires the store lock unless the caller already holds it as part of
// a transaction.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// cityStore adapts Store to the store.CityStore interface.
type cityStore struct {
	store *Store
	inTx  bool
}

var _ store.CityStore = (*cityStore)(nil)

// WithTx is a no-op for the in-memory store; atomicity comes from
// RunInTransaction instead.
func (c *cityStore) WithTx(_ *sql.Tx) store.CityStore {
	return c
}

func (c *cityStore) List(
	_ context.Context,
	filter store.CityFilter,
	page store.Page,
) ([]domain.City, store.PaginationMetadata, error) {
	unlock := c.store.lock(c.inTx)
	defer unlock()

	matched := []domain.City{}
	for _, city := range c.store.cities {
		city := city
		if filter.Match(&city) {
			matched = append(matched, city)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	meta := store.NewPaginationMetadata(len(matched), page)

	offset := page.Offset()
	if offset >= len(matched) {
		return []domain.City{}, meta, nil
	}
	end := offset + page.Limit()
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]domain.City, end-offset)
	copy(out, matched[offset:end])
	return out, meta, nil
}

func (c *cityStore) GetByID(
	_ context.Context,
	id int64,
	includePointsOfInterest bool,
) (*domain.City, error) {
	unlock := c.store.lock(c.inTx)
	defer unlock()

	city, ok := c.store.cities[id]
	if !ok {
		return nil, store.ErrCityNotFound
	}

	if includePointsOfInterest {
		city.PointsOfInterest = c.store.poisForCity(id)
	}

	return &city, nil
}

func (c *cityStore) Exists(_ context.Context, id int64) (bool, error) {
	unlock := c.store.lock(c.inTx)
	defer unlock()

	_, ok := c.store.cities[id]
	return ok, nil
}

func (c *cityStore) Create(_ context.Context, city *domain.City) error {
	if err := city.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	unlock := c.store.lock(c.inTx)
	defer unlock()

	c.store.nextCityID++
	city.ID = c.store.nextCityID

	stored := *city
	stored.PointsOfInterest = nil
	c.store.cities[city.ID] = stored
	return nil
}

func (c *cityStore) Delete(_ context.Context, id int64) error {
	unlock := c.store.lock(c.inTx)
	defer unlock()

	if _, ok := c.store.cities[id]; !ok {
		return store.ErrCityNotFound
	}

	delete(c.store.cities, id)
	for poiID, poi := range c.store.pois {
		if poi.CityID == id {
			delete(c.store.pois, poiID)
		}
	}
	return nil
}

// poisForCity returns the city's points of interest in id order. Caller must
// hold the store lock.
func (s *Store) poisForCity(cityID int64) []domain.PointOfInterest {
	out := []domain.PointOfInterest{}
	for _, poi := range s.pois {
		if poi.CityID == cityID {
			out = append(out, poi)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// poiStore adapts Store to the store.PointOfInterestStore interface.
type poiStore struct {
	store *Store
	inTx  bool
}

var _ store.PointOfInterestStore = (*poiStore)(nil)

// WithTx is a no-op for the in-memory store.
func (p *poiStore) WithTx(_ *sql.Tx) store.PointOfInterestStore {
	return p
}

func (p *poiStore) ListForCity(_ context.Context, cityID int64) ([]domain.PointOfInterest, error) {
	unlock := p.store.lock(p.inTx)
	defer unlock()

	return p.store.poisForCity(cityID), nil
}

func (p *poiStore) GetForCity(
	_ context.Context,
	cityID, id int64,
) (*domain.PointOfInterest, error) {
	unlock := p.store.lock(p.inTx)
	defer unlock()

	poi, ok := p.store.pois[id]
	if !ok || poi.CityID != cityID {
		return nil, store.ErrPointOfInterestNotFound
	}
	return &poi, nil
}

func (p *poiStore) Create(_ context.Context, poi *domain.PointOfInterest) error {
	if err := poi.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	unlock := p.store.lock(p.inTx)
	defer unlock()

	if _, ok := p.store.cities[poi.CityID]; !ok {
		return fmt.Errorf("%w: city %d does not exist", store.ErrInvalidEntity, poi.CityID)
	}

	p.store.nextPOIID++
	poi.ID = p.store.nextPOIID
	p.store.pois[poi.ID] = *poi
	return nil
}

func (p *poiStore) Update(_ context.Context, poi *domain.PointOfInterest) error {
	if err := poi.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	unlock := p.store.lock(p.inTx)
	defer unlock()

	existing, ok := p.store.pois[poi.ID]
	if !ok || existing.CityID != poi.CityID {
		return store.ErrPointOfInterestNotFound
	}

	existing.Name = poi.Name
	existing.Description = poi.Description
	p.store.pois[poi.ID] = existing
	return nil
}

func (p *poiStore) Delete(_ context.Context, cityID, id int64) error {
	unlock := p.store.lock(p.inTx)
	defer unlock()

	poi, ok := p.store.pois[id]
	if !ok || poi.CityID != cityID {
		return store.ErrPointOfInterestNotFound
	}

	delete(p.store.pois, id)
	return nil
}
