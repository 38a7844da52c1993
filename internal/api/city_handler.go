package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cityinfohq/cityinfo-api/internal/api/shared"
	"github.com/cityinfohq/cityinfo-api/internal/service/catalog"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// paginationHeader is the response header carrying the list metadata.
const paginationHeader = "X-Pagination"

// CityHandler handles the city endpoints.
type CityHandler struct {
	service catalog.Service
	logger  *slog.Logger
}

// NewCityHandler creates a CityHandler. If logger is nil, the default logger
// is used.
func NewCityHandler(service catalog.Service, logger *slog.Logger) *CityHandler {
	if service == nil {
		panic("catalog service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CityHandler{
		service: service,
		logger:  logger.With(slog.String("component", "city_handler")),
	}
}

// List handles GET /api/v1/cities. Pagination metadata is returned in the
// X-Pagination header; the body is the page of cities without their child
// collections.
func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page, err := parseListQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cities, meta, err := h.service.ListCities(r.Context(), filter, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := setPaginationHeader(w, meta); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "An unexpected error occurred", err)
		return
	}

	responses := make([]CityResponse, 0, len(cities))
	for i := range cities {
		responses = append(responses, newCityResponse(&cities[i], false))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /api/v1/cities/{cityId}. The includePointsOfInterest query
// parameter controls whether the child collection is loaded.
func (h *CityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cityId")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid city ID")
		return
	}

	includePOI, err := queryBool(r, "includePointsOfInterest")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	city, err := h.service.GetCity(r.Context(), id, includePOI)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newCityResponse(city, includePOI))
}

// Create handles POST /api/v1/cities.
func (h *CityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	city, err := h.service.CreateCity(r.Context(), req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.Header().Set("Location", joinLocation(r.URL.Path, city.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, newCityResponse(city, false))
}

// Delete handles DELETE /api/v1/cities/{cityId}.
func (h *CityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cityId")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid city ID")
		return
	}

	if err := h.service.DeleteCity(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrCityNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "City not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// setPaginationHeader serializes the metadata into the X-Pagination header.
func setPaginationHeader(w http.ResponseWriter, meta store.PaginationMetadata) error {
	encoded, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	w.Header().Set(paginationHeader, string(encoded))
	return nil
}
