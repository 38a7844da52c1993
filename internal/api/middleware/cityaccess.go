package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cityinfohq/cityinfo-api/internal/api/shared"
	"github.com/cityinfohq/cityinfo-api/internal/redact"
	"github.com/cityinfohq/cityinfo-api/internal/service/tenant"
)

// CityAccessMiddleware enforces tenant isolation on routes carrying a
// {cityId} parameter. It runs after authentication and before the handler,
// so denial takes precedence over not-found.
type CityAccessMiddleware struct {
	authorizer tenant.Authorizer
}

// NewCityAccessMiddleware creates a CityAccessMiddleware using the given
// authorizer.
func NewCityAccessMiddleware(authorizer tenant.Authorizer) *CityAccessMiddleware {
	return &CityAccessMiddleware{
		authorizer: authorizer,
	}
}

// RequireCityAccess authorizes the caller against the city named by the
// {cityId} URL parameter.
func (m *CityAccessMiddleware) RequireCityAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cityID, err := strconv.ParseInt(chi.URLParam(r, "cityId"), 10, 64)
		if err != nil || cityID <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid city ID")
			return
		}

		claims, ok := GetClaims(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		if err := m.authorizer.AuthorizeCity(r.Context(), claims, cityID); err != nil {
			if errors.Is(err, tenant.ErrCityAccessDenied) {
				shared.RespondWithError(w, r, http.StatusForbidden, "Access to this city is not allowed")
				return
			}
			slog.Error("city authorization failed", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authorization error")
			return
		}

		next.ServeHTTP(w, r)
	})
}
