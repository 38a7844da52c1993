// Package api contains the HTTP handlers for the city catalog: cities,
// points of interest, and file downloads. Handlers translate between the
// wire format and the service layer, and map service errors to status codes
// without leaking internal details.
package api
