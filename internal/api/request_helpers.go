package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// pathID extracts a positive int64 URL parameter, e.g. {cityId}.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidID, name)
	}
	return id, nil
}

// joinLocation appends the created resource's id to the request path to form
// a Location header value.
func joinLocation(basePath string, id int64) string {
	return strings.TrimSuffix(basePath, "/") + "/" + strconv.FormatInt(id, 10)
}

// queryBool reads a boolean query parameter, treating absence as false.
func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s", name)
	}
	return value, nil
}

// parseListQuery reads the city list parameters: name, searchQuery,
// pageNumber, and pageSize. Out-of-range page values are normalized by
// store.NewPage; non-numeric ones are rejected.
func parseListQuery(r *http.Request) (store.CityFilter, store.Page, error) {
	q := r.URL.Query()

	filter := store.CityFilter{
		Name:        q.Get("name"),
		SearchQuery: q.Get("searchQuery"),
	}

	number := 1
	if raw := q.Get("pageNumber"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return store.CityFilter{}, store.Page{}, fmt.Errorf("invalid pageNumber")
		}
		number = parsed
	}

	size := store.DefaultPageSize
	if raw := q.Get("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return store.CityFilter{}, store.Page{}, fmt.Errorf("invalid pageSize")
		}
		size = parsed
	}

	return filter, store.NewPage(number, size), nil
}
