package api

import (
	"log/slog"
	"net/http"

	"github.com/cityinfohq/cityinfo-api/internal/api/shared"
	"github.com/cityinfohq/cityinfo-api/internal/service/catalog"
)

// PointOfInterestHandler handles the point of interest endpoints. All routes
// are nested under a city and run behind the city access middleware, so by
// the time a handler executes the caller is already authorized for the city.
type PointOfInterestHandler struct {
	service catalog.Service
	logger  *slog.Logger
}

// NewPointOfInterestHandler creates a PointOfInterestHandler. If logger is
// nil, the default logger is used.
func NewPointOfInterestHandler(service catalog.Service, logger *slog.Logger) *PointOfInterestHandler {
	if service == nil {
		panic("catalog service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PointOfInterestHandler{
		service: service,
		logger:  logger.With(slog.String("component", "poi_handler")),
	}
}

// pathIDs extracts the city and point of interest ids from the URL. The
// second return is false when a response has already been written.
func (h *PointOfInterestHandler) pathIDs(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	cityID, err := pathID(r, "cityId")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid city ID")
		return 0, 0, false
	}
	poiID, err := pathID(r, "poiId")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid point of interest ID")
		return 0, 0, false
	}
	return cityID, poiID, true
}

// List handles GET /api/v1/cities/{cityId}/pointsofinterest.
func (h *PointOfInterestHandler) List(w http.ResponseWriter, r *http.Request) {
	cityID, err := pathID(r, "cityId")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid city ID")
		return
	}

	pois, err := h.service.ListPointsOfInterest(r.Context(), cityID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]PointOfInterestResponse, 0, len(pois))
	for i := range pois {
		responses = append(responses, newPointOfInterestResponse(&pois[i]))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /api/v1/cities/{cityId}/pointsofinterest/{poiId}.
func (h *PointOfInterestHandler) Get(w http.ResponseWriter, r *http.Request) {
	cityID, poiID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	poi, err := h.service.GetPointOfInterest(r.Context(), cityID, poiID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newPointOfInterestResponse(poi))
}

// Create handles POST /api/v1/cities/{cityId}/pointsofinterest. The response
// carries a Location header pointing at the created resource.
func (h *PointOfInterestHandler) Create(w http.ResponseWriter, r *http.Request) {
	cityID, err := pathID(r, "cityId")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid city ID")
		return
	}

	var req CreatePointOfInterestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	poi, err := h.service.CreatePointOfInterest(r.Context(), cityID, req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.Header().Set("Location", joinLocation(r.URL.Path, poi.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, newPointOfInterestResponse(poi))
}

// Update handles PUT /api/v1/cities/{cityId}/pointsofinterest/{poiId}. The
// stored entity is fully replaced; an omitted description is cleared.
func (h *PointOfInterestHandler) Update(w http.ResponseWriter, r *http.Request) {
	cityID, poiID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req UpdatePointOfInterestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	if _, err := h.service.UpdatePointOfInterest(r.Context(), cityID, poiID, req.Name, req.Description); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Patch handles PATCH /api/v1/cities/{cityId}/pointsofinterest/{poiId}.
// Fields absent from the body keep their stored values; the merged result is
// validated before anything is written.
func (h *PointOfInterestHandler) Patch(w http.ResponseWriter, r *http.Request) {
	cityID, poiID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	var req PatchPointOfInterestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	if _, err := h.service.PatchPointOfInterest(r.Context(), cityID, poiID, req.Name, req.Description); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/cities/{cityId}/pointsofinterest/{poiId}.
func (h *PointOfInterestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cityID, poiID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePointOfInterest(r.Context(), cityID, poiID); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
