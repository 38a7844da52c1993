package catalog

import (
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// Errors returned by the catalog service. They alias the store sentinels so
// callers can match with errors.Is at either layer without importing both.
var (
	// ErrCityNotFound indicates the referenced city does not exist. Every
	// point of interest operation checks this before touching the child
	// collection.
	ErrCityNotFound = store.ErrCityNotFound

	// ErrPointOfInterestNotFound indicates the point of interest does not
	// exist under the referenced city.
	ErrPointOfInterestNotFound = store.ErrPointOfInterestNotFound
)
