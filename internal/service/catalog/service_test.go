package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/platform/memstore"
	"github.com/cityinfohq/cityinfo-api/internal/service/catalog"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []string
}

func (n *recordingNotifier) Notify(_ context.Context, subject, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, subject+" "+body)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notifications)
}

func newTestService(t *testing.T) (catalog.Service, *memstore.Store, *recordingNotifier) {
	t.Helper()

	mem := memstore.New()
	notifier := &recordingNotifier{}
	svc, err := catalog.NewService(mem.Cities(), mem.PointsOfInterest(), mem, notifier, nil)
	require.NoError(t, err)
	return svc, mem, notifier
}

func createCity(t *testing.T, svc catalog.Service, name, description string) *domain.City {
	t.Helper()
	city, err := svc.CreateCity(context.Background(), name, description)
	require.NoError(t, err)
	return city
}

func createPOI(t *testing.T, svc catalog.Service, cityID int64, name, description string) *domain.PointOfInterest {
	t.Helper()
	poi, err := svc.CreatePointOfInterest(context.Background(), cityID, name, description)
	require.NoError(t, err)
	return poi
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	t.Parallel()

	mem := memstore.New()
	notifier := &recordingNotifier{}

	_, err := catalog.NewService(nil, mem.PointsOfInterest(), mem, notifier, nil)
	assert.Error(t, err)

	_, err = catalog.NewService(mem.Cities(), nil, mem, notifier, nil)
	assert.Error(t, err)

	_, err = catalog.NewService(mem.Cities(), mem.PointsOfInterest(), nil, notifier, nil)
	assert.Error(t, err)

	_, err = catalog.NewService(mem.Cities(), mem.PointsOfInterest(), mem, nil, nil)
	assert.Error(t, err)
}

func TestListCitiesPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	for i := 0; i < 25; i++ {
		createCity(t, svc, "City "+string(rune('A'+i)), "")
	}

	// Oversized page size clamps to the maximum of 20.
	cities, meta, err := svc.ListCities(ctx, store.CityFilter{}, store.NewPage(1, 100))
	require.NoError(t, err)
	assert.Len(t, cities, 20)
	assert.Equal(t, 25, meta.TotalItemCount)
	assert.Equal(t, 20, meta.PageSize)
	assert.Equal(t, 2, meta.TotalPageCount)

	// Page numbers below one normalize to the first page.
	first, _, err := svc.ListCities(ctx, store.CityFilter{}, store.NewPage(0, 10))
	require.NoError(t, err)
	normalized, _, err := svc.ListCities(ctx, store.CityFilter{}, store.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, normalized, first)

	// A page past the end yields an empty slice with true totals.
	past, meta, err := svc.ListCities(ctx, store.CityFilter{}, store.NewPage(99, 10))
	require.NoError(t, err)
	assert.Empty(t, past)
	assert.Equal(t, 25, meta.TotalItemCount)
	assert.Equal(t, 3, meta.TotalPageCount)
}

func TestListCitiesFilter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	createCity(t, svc, "Seattle", "Rainy but green.")
	createCity(t, svc, "Berlin", "Green parks everywhere.")
	createCity(t, svc, "Phoenix", "Dry desert heat.")

	// Exact name match, case-insensitive.
	cities, meta, err := svc.ListCities(ctx, store.CityFilter{Name: "seattle"}, store.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Seattle", cities[0].Name)
	assert.Equal(t, 1, meta.TotalItemCount)

	// Substring search over name or description.
	cities, meta, err = svc.ListCities(ctx, store.CityFilter{SearchQuery: "GREEN"}, store.NewPage(1, 10))
	require.NoError(t, err)
	assert.Len(t, cities, 2)
	assert.Equal(t, 2, meta.TotalItemCount)

	// Both constraints combine with AND.
	cities, _, err = svc.ListCities(ctx, store.CityFilter{Name: "Seattle", SearchQuery: "desert"}, store.NewPage(1, 10))
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestCreateCityRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	created := createCity(t, svc, "Seattle", "Rainy but green.")
	assert.Positive(t, created.ID)

	got, err := svc.GetCity(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Description, got.Description)

	other := createCity(t, svc, "Berlin", "")
	assert.NotEqual(t, created.ID, other.ID)
}

func TestCreateCityValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.CreateCity(context.Background(), "   ", "desc")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetCityWithPointsOfInterest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	city := createCity(t, svc, "Seattle", "Rainy.")
	createPOI(t, svc, city.ID, "Space Needle", "An observation tower.")
	createPOI(t, svc, city.ID, "Pike Place Market", "A public market.")

	bare, err := svc.GetCity(ctx, city.ID, false)
	require.NoError(t, err)
	assert.Empty(t, bare.PointsOfInterest)

	full, err := svc.GetCity(ctx, city.ID, true)
	require.NoError(t, err)
	require.Len(t, full.PointsOfInterest, 2)
	assert.Equal(t, "Space Needle", full.PointsOfInterest[0].Name)
}

func TestGetCityNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.GetCity(context.Background(), 404, false)
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)
}

func TestDeleteCityCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	city := createCity(t, svc, "Seattle", "Rainy.")
	createPOI(t, svc, city.ID, "Space Needle", "")

	require.NoError(t, svc.DeleteCity(ctx, city.ID))

	_, err := svc.GetCity(ctx, city.ID, false)
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)

	_, err = svc.ListPointsOfInterest(ctx, city.ID)
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)

	assert.ErrorIs(t, svc.DeleteCity(ctx, city.ID), catalog.ErrCityNotFound)
}

func TestPointOfInterestOpsGuardCityExistence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, notifier := newTestService(t)

	_, err := svc.ListPointsOfInterest(ctx, 404)
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)

	_, err = svc.GetPointOfInterest(ctx, 404, 1)
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)

	_, err = svc.CreatePointOfInterest(ctx, 404, "Somewhere", "")
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)

	_, err = svc.UpdatePointOfInterest(ctx, 404, 1, "Somewhere", "")
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)

	name := "Somewhere"
	_, err = svc.PatchPointOfInterest(ctx, 404, 1, &name, nil)
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)

	err = svc.DeletePointOfInterest(ctx, 404, 1)
	assert.ErrorIs(t, err, catalog.ErrCityNotFound)
	assert.Zero(t, notifier.count(), "failed delete must not notify")
}

func TestCreatePointOfInterestRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	city := createCity(t, svc, "Seattle", "Rainy.")

	created := createPOI(t, svc, city.ID, "Space Needle", "An observation tower.")
	assert.Positive(t, created.ID)

	got, err := svc.GetPointOfInterest(ctx, city.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Space Needle", got.Name)

	second := createPOI(t, svc, city.ID, "Pike Place Market", "")
	assert.NotEqual(t, created.ID, second.ID)
}

func TestUpdatePointOfInterestFullReplace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	city := createCity(t, svc, "Seattle", "Rainy.")
	poi := createPOI(t, svc, city.ID, "Space Needle", "An observation tower.")

	// An omitted description is replaced with empty, not preserved.
	updated, err := svc.UpdatePointOfInterest(ctx, city.ID, poi.ID, "The Space Needle", "")
	require.NoError(t, err)
	assert.Equal(t, "The Space Needle", updated.Name)
	assert.Empty(t, updated.Description)

	got, err := svc.GetPointOfInterest(ctx, city.ID, poi.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Description)
}

func TestUpdatePointOfInterestInvalidNameLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	city := createCity(t, svc, "Seattle", "Rainy.")
	poi := createPOI(t, svc, city.ID, "Space Needle", "An observation tower.")

	_, err := svc.UpdatePointOfInterest(ctx, city.ID, poi.ID, "", "new description")
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.GetPointOfInterest(ctx, city.ID, poi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Space Needle", got.Name)
	assert.Equal(t, "An observation tower.", got.Description)
}

func TestPatchPointOfInterestMergesFields(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	city := createCity(t, svc, "Seattle", "Rainy.")
	poi := createPOI(t, svc, city.ID, "Space Needle", "An observation tower.")

	desc := "A 605 ft tower."
	patched, err := svc.PatchPointOfInterest(ctx, city.ID, poi.ID, nil, &desc)
	require.NoError(t, err)
	assert.Equal(t, "Space Needle", patched.Name, "omitted fields keep their value")
	assert.Equal(t, desc, patched.Description)

	// An invalid merge result is rejected without mutating stored state.
	empty := ""
	_, err = svc.PatchPointOfInterest(ctx, city.ID, poi.ID, &empty, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.GetPointOfInterest(ctx, city.ID, poi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Space Needle", got.Name)
	assert.Equal(t, desc, got.Description)
}

func TestDeletePointOfInterestNotifiesAfterCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, notifier := newTestService(t)
	city := createCity(t, svc, "Seattle", "Rainy.")
	poi := createPOI(t, svc, city.ID, "Space Needle", "")
	other := createPOI(t, svc, city.ID, "Pike Place Market", "")

	require.NoError(t, svc.DeletePointOfInterest(ctx, city.ID, poi.ID))
	assert.Equal(t, 1, notifier.count())

	_, err := svc.GetPointOfInterest(ctx, city.ID, poi.ID)
	assert.ErrorIs(t, err, catalog.ErrPointOfInterestNotFound)

	// The sibling survives.
	_, err = svc.GetPointOfInterest(ctx, city.ID, other.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePointOfInterest(ctx, city.ID, poi.ID), catalog.ErrPointOfInterestNotFound)
	assert.Equal(t, 1, notifier.count())
}

func TestDeletePointOfInterestCommitFailureDoesNotNotify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, mem, notifier := newTestService(t)
	city := createCity(t, svc, "Seattle", "Rainy.")
	poi := createPOI(t, svc, city.ID, "Space Needle", "")

	mem.FailNextCommit(errors.New("connection lost"))
	err := svc.DeletePointOfInterest(ctx, city.ID, poi.ID)
	require.Error(t, err)
	assert.Zero(t, notifier.count())

	mem.FailNextCommit(nil)
	got, err := svc.GetPointOfInterest(ctx, city.ID, poi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Space Needle", got.Name)
}

func TestPointOfInterestScopedToCity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newTestService(t)
	seattle := createCity(t, svc, "Seattle", "Rainy.")
	berlin := createCity(t, svc, "Berlin", "Historic.")
	poi := createPOI(t, svc, seattle.ID, "Space Needle", "")

	_, err := svc.GetPointOfInterest(ctx, berlin.ID, poi.ID)
	assert.ErrorIs(t, err, catalog.ErrPointOfInterestNotFound)
}
