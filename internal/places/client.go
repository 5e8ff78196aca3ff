package places

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Place is a trimmed-down merchant result for the gift card picker.
type Place struct {
	PlaceID string  `json:"place_id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Rating  float32 `json:"rating,omitempty"`
}

// GeocodeResult resolves a free-form address to a coordinate.
type GeocodeResult struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// RouteLeg summarizes walking directions to a gift's unlock point.
type RouteLeg struct {
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	Summary         string `json:"summary"`
}

// Client covers the maps/places calls the app makes.
type Client interface {
	Nearby(ctx context.Context, lat, lon float64, keyword string, radiusMeters uint) ([]Place, error)
	Details(ctx context.Context, placeID string) (Place, error)
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
	Directions(ctx context.Context, fromLat, fromLon, toLat, toLon float64) ([]RouteLeg, error)
}

// MapsClient implements Client with the Google Maps services library.
type MapsClient struct {
	client *maps.Client
}

// NewMapsClient builds a client with the given API key.
func NewMapsClient(apiKey string) (*MapsClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &MapsClient{client: client}, nil
}

// Nearby searches merchants around a coordinate.
func (c *MapsClient) Nearby(ctx context.Context, lat, lon float64, keyword string, radiusMeters uint) ([]Place, error) {
	resp, err := c.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lon},
		Radius:   radiusMeters,
		Keyword:  keyword,
	})
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	places := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, Place{
			PlaceID: r.PlaceID,
			Name:    r.Name,
			Address: r.Vicinity,
			Lat:     r.Geometry.Location.Lat,
			Lon:     r.Geometry.Location.Lng,
			Rating:  r.Rating,
		})
	}
	return places, nil
}

// Details fetches a single place.
func (c *MapsClient) Details(ctx context.Context, placeID string) (Place, error) {
	resp, err := c.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: placeID})
	if err != nil {
		return Place{}, fmt.Errorf("place details: %w", err)
	}
	return Place{
		PlaceID: resp.PlaceID,
		Name:    resp.Name,
		Address: resp.FormattedAddress,
		Lat:     resp.Geometry.Location.Lat,
		Lon:     resp.Geometry.Location.Lng,
		Rating:  resp.Rating,
	}, nil
}

// Geocode resolves an address to coordinates.
func (c *MapsClient) Geocode(ctx context.Context, address string) (GeocodeResult, error) {
	results, err := c.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return GeocodeResult{}, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return GeocodeResult{}, fmt.Errorf("geocode: no results for %q", address)
	}
	r := results[0]
	return GeocodeResult{
		Address: r.FormattedAddress,
		Lat:     r.Geometry.Location.Lat,
		Lon:     r.Geometry.Location.Lng,
	}, nil
}

// Directions returns walking directions between two coordinates.
func (c *MapsClient) Directions(ctx context.Context, fromLat, fromLon, toLat, toLon float64) ([]RouteLeg, error) {
	routes, _, err := c.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", fromLat, fromLon),
		Destination: fmt.Sprintf("%f,%f", toLat, toLon),
		Mode:        maps.TravelModeWalking,
	})
	if err != nil {
		return nil, fmt.Errorf("directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("directions: no route found")
	}

	legs := make([]RouteLeg, 0, len(routes[0].Legs))
	for _, leg := range routes[0].Legs {
		legs = append(legs, RouteLeg{
			DistanceMeters:  leg.Distance.Meters,
			DurationSeconds: int(leg.Duration.Seconds()),
			Summary:         routes[0].Summary,
		})
	}
	return legs, nil
}
