package colleges

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"collegeatlas-backend/lib/geoutil"
)

// SearchQuery carries the raw filter parameters from the request. All fields
// are optional; MaxDistance arrives unparsed so a bad number can be reported
// as the caller's mistake.
type SearchQuery struct {
	Name          string
	MaxDistance   string
	StartingPoint string
}

// Search returns the catalog filtered by an optional case-insensitive name
// fragment and an optional geo radius. The radius applies only when both
// MaxDistance and StartingPoint are present; one without the other is
// ignored. Both filters together compose as AND.
func (s Service) Search(ctx context.Context, query SearchQuery) ([]College, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if query.Name != "" {
		records = filterByName(records, query.Name)
	}

	if query.MaxDistance != "" && query.StartingPoint != "" {
		radius, err := strconv.ParseFloat(query.MaxDistance, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: max_distance %q is not a number", ErrBadInput, query.MaxDistance)
		}
		origin, err := s.resolvePlace(ctx, query.StartingPoint)
		if err != nil {
			return nil, err
		}
		records = filterByRadius(records, origin, radius)
	}

	return records, nil
}

func filterByName(records []College, fragment string) []College {
	fragment = strings.ToLower(fragment)

	var out []College
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Name), fragment) {
			out = append(out, record)
		}
	}
	return out
}

func filterByRadius(records []College, origin GeoPoint, radius float64) []College {
	var out []College
	for _, record := range records {
		distance := geoutil.DistanceMiles(
			origin.Lat, origin.Lon,
			record.GeoPoint.Lat, record.GeoPoint.Lon,
		)
		if distance < radius {
			out = append(out, record)
		}
	}
	return out
}
