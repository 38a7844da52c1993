// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces, along with error mapping from driver-level errors to the
// store's sentinel errors.
package postgres
