package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/platform/postgres"
	"github.com/cityinfohq/cityinfo-api/internal/store"
	"github.com/cityinfohq/cityinfo-api/migrations"
)

// integrationDB opens the database named by CITYINFO_TEST_DATABASE_URL,
// applies migrations, and clears the catalog tables. Tests are skipped when
// the variable is unset.
func integrationDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("CITYINFO_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CITYINFO_TEST_DATABASE_URL not set; skipping integration test")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "."))

	_, err = db.Exec("TRUNCATE points_of_interest, cities RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	return db
}

func TestPostgresCityStoreCRUD(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	cities := postgres.NewPostgresCityStore(db, nil)

	city := &domain.City{Name: "Seattle", Description: "Rainy but green."}
	require.NoError(t, cities.Create(ctx, city))
	assert.Positive(t, city.ID)

	got, err := cities.GetByID(ctx, city.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Seattle", got.Name)

	exists, err := cities.Exists(ctx, city.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	list, meta, err := cities.List(ctx, store.CityFilter{Name: "seattle"}, store.NewPage(1, 10))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, meta.TotalItemCount)

	require.NoError(t, cities.Delete(ctx, city.ID))
	_, err = cities.GetByID(ctx, city.ID, false)
	assert.ErrorIs(t, err, store.ErrCityNotFound)
	assert.ErrorIs(t, cities.Delete(ctx, city.ID), store.ErrCityNotFound)
}

func TestPostgresPointOfInterestStoreCRUD(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	cities := postgres.NewPostgresCityStore(db, nil)
	pois := postgres.NewPostgresPointOfInterestStore(db, nil)

	city := &domain.City{Name: "Seattle"}
	require.NoError(t, cities.Create(ctx, city))

	poi := &domain.PointOfInterest{CityID: city.ID, Name: "Space Needle", Description: "An observation tower."}
	require.NoError(t, pois.Create(ctx, poi))
	assert.Positive(t, poi.ID)

	got, err := pois.GetForCity(ctx, city.ID, poi.ID)
	require.NoError(t, err)
	assert.Equal(t, "Space Needle", got.Name)

	// Wrong city scope is a not-found, not a leak.
	_, err = pois.GetForCity(ctx, city.ID+1, poi.ID)
	assert.ErrorIs(t, err, store.ErrPointOfInterestNotFound)

	poi.Description = "A 605 ft observation tower."
	require.NoError(t, pois.Update(ctx, poi))

	list, err := pois.ListForCity(ctx, city.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A 605 ft observation tower.", list[0].Description)

	// Deleting the city cascades to its points of interest.
	require.NoError(t, cities.Delete(ctx, city.ID))
	list, err = pois.ListForCity(ctx, city.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostgresTxRunnerRollsBack(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()
	cities := postgres.NewPostgresCityStore(db, nil)
	runner := postgres.NewTxRunner(db, nil)

	boom := errors.New("boom")
	err := runner.RunInTransaction(ctx, func(ctx context.Context, stores store.Stores) error {
		if err := stores.Cities.Create(ctx, &domain.City{Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, meta, err := cities.List(ctx, store.CityFilter{Name: "Ghost"}, store.NewPage(1, 10))
	require.NoError(t, err)
	assert.Zero(t, meta.TotalItemCount, "rolled back city must not be visible")
}
