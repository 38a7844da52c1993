// Package tenant enforces city-level access control: a caller may only
// operate on a city when their token's city claim matches that city's name.
// The check runs before any existence guard, so callers outside the tenant
// see a uniform denial and cannot probe which city ids exist.
package tenant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
	"github.com/cityinfohq/cityinfo-api/internal/platform/logger"
	"github.com/cityinfohq/cityinfo-api/internal/service/auth"
	"github.com/cityinfohq/cityinfo-api/internal/store"
)

// ErrCityAccessDenied is returned when the caller's city claim is missing or
// does not match the target city. It deliberately does not distinguish a
// missing city from a mismatched claim.
var ErrCityAccessDenied = fmt.Errorf("%w: city access denied", domain.ErrUnauthorized)

// Authorizer decides whether a caller may operate on a city.
type Authorizer interface {
	// AuthorizeCity returns nil when the caller's claims grant access to the
	// city, and ErrCityAccessDenied otherwise.
	AuthorizeCity(ctx context.Context, claims *auth.Claims, cityID int64) error
}

// cityAuthorizer implements Authorizer by comparing the configured claim
// against the target city's name.
type cityAuthorizer struct {
	cities   store.CityStore
	claimKey string
	logger   *slog.Logger
}

// Ensure cityAuthorizer implements Authorizer interface
var _ Authorizer = (*cityAuthorizer)(nil)

// NewCityAuthorizer creates an Authorizer that reads the caller's tenant city
// from the claim stored under claimKey. If logger is nil, the default logger
// is used.
func NewCityAuthorizer(cities store.CityStore, claimKey string, logger *slog.Logger) (Authorizer, error) {
	if cities == nil {
		return nil, fmt.Errorf("city store cannot be nil")
	}
	if claimKey == "" {
		return nil, fmt.Errorf("claim key cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &cityAuthorizer{
		cities:   cities,
		claimKey: claimKey,
		logger:   logger.With(slog.String("component", "city_authorizer")),
	}, nil
}

// AuthorizeCity implements Authorizer.AuthorizeCity
func (a *cityAuthorizer) AuthorizeCity(
	ctx context.Context,
	claims *auth.Claims,
	cityID int64,
) error {
	log := logger.FromContextOrDefault(ctx, a.logger)

	claimValue, ok := claims.Claim(a.claimKey)
	if !ok || claimValue == "" {
		log.Debug("city access denied: claim missing",
			slog.String("claim_key", a.claimKey),
			slog.Int64("city_id", cityID))
		return ErrCityAccessDenied
	}

	city, err := a.cities.GetByID(ctx, cityID, false)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Denial takes precedence over not-found so outsiders cannot
			// probe which ids exist.
			log.Debug("city access denied: city does not exist",
				slog.Int64("city_id", cityID))
			return ErrCityAccessDenied
		}
		return fmt.Errorf("failed to authorize city %d: %w", cityID, err)
	}

	if city.Name != claimValue {
		log.Debug("city access denied: claim does not match city",
			slog.String("claim_key", a.claimKey),
			slog.Int64("city_id", cityID))
		return ErrCityAccessDenied
	}

	return nil
}
