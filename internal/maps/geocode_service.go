// README: City name canonicalization via the Google Geocoding API.
package maps

import (
	"context"
	"strings"

	"googlemaps.github.io/maps"
)

// GeocodeService resolves free-form city names ("nyc", "méxico df") to their
// canonical locality names for the booking confirmation. Resolution is
// best-effort; callers keep the user's wording when it fails.
type GeocodeService struct {
	client *maps.Client
}

func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeocodeService{client: client}, nil
}

// Canonical returns the locality name for the given city, and whether a
// confident resolution was found.
func (s *GeocodeService) Canonical(ctx context.Context, name string) (string, bool) {
	if strings.TrimSpace(name) == "" {
		return name, false
	}
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: name})
	if err != nil || len(results) == 0 {
		return name, false
	}
	for _, comp := range results[0].AddressComponents {
		for _, t := range comp.Types {
			if t == "locality" {
				return comp.LongName, true
			}
		}
	}
	return name, false
}
