package colleges

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/codes"
)

type geocodeResponse struct {
	Data []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"data"`
}

// resolvePlace forward-geocodes a free-text place name to a coordinate,
// taking the first candidate. A place the geocoder cannot resolve is an
// error; callers that asked for a radius filter need a real origin.
func (s Service) resolvePlace(ctx context.Context, place string) (GeoPoint, error) {
	ctx, span := tracer.Start(ctx, "resolvePlace")
	defer span.End()

	res, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("access_key", s.cfg.Geocoding.AccessKey).
		SetQueryParam("query", place).
		SetQueryParam("limit", "1").
		SetQueryParam("output", "json").
		Get(s.cfg.Geocoding.BaseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding request failed")
		return GeoPoint{}, err
	}
	if res.IsError() {
		err := fmt.Errorf("geocoding: unexpected status %d", res.StatusCode())
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding request failed")
		return GeoPoint{}, err
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(res.Body(), &decoded); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding response is unreadable")
		return GeoPoint{}, fmt.Errorf("geocoding: %w", err)
	}
	if len(decoded.Data) == 0 {
		err := fmt.Errorf("geocoding: no results for %q", place)
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding returned no results")
		return GeoPoint{}, err
	}

	return GeoPoint{
		Lat: decoded.Data[0].Latitude,
		Lon: decoded.Data[0].Longitude,
	}, nil
}
