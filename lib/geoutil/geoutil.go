// Package geoutil provides great-circle math for the college search radius
// filter.
package geoutil

import "math"

// Earth radius in miles, matching the value the upstream dataset's distances
// were calibrated against.
const earthRadiusMiles = 3956.0

// DistanceMiles returns the haversine distance in miles between two points
// given in decimal degrees.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := radians(lat1)
	rlat2 := radians(lat2)
	dlat := rlat2 - rlat1
	dlon := radians(lon2) - radians(lon1)

	h := sinSq(dlat/2) + math.Cos(rlat1)*math.Cos(rlat2)*sinSq(dlon/2)

	// Floating point overshoot can push √h a hair past 1 for antipodal
	// points, which would take asin out of its domain.
	root := math.Min(math.Sqrt(h), 1.0)

	return 2 * earthRadiusMiles * math.Asin(root)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func sinSq(x float64) float64 {
	s := math.Sin(x)
	return s * s
}
