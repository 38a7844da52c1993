// Package store defines the persistence interfaces for the city catalog
// together with the pagination and filtering primitives shared by every
// implementation. Implementations live under internal/platform.
package store
