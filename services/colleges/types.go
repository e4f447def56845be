package colleges

import "collegeatlas-backend/services/colleges/insight"

// GeoPoint is a (longitude, latitude) pair in decimal degrees. Values are
// passed through from the upstream dataset uninterpreted.
type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// College is one institution row from the upstream catalog. Identity is the
// IPEDS id; rows are never mutated after they are decoded.
type College struct {
	IpedsId   string   `json:"ipedsid"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Zip       string   `json:"zip"`
	GeoPoint  GeoPoint `json:"geo_point_2d"`
	NaicsDesc string   `json:"naics_desc"`
}

// CollegeInfo is the per-college enrichment record: three URLs scraped from
// the profile page, the collaborator-extracted admission statistics and the
// list of application requirements.
type CollegeInfo struct {
	AdmissionsUrl   string             `json:"admissions_url"`
	ApplyUrl        string             `json:"apply_url"`
	FinaidUrl       string             `json:"finaid_url"`
	AdmissionInfo   insight.Statistics `json:"admission_info"`
	ApplicationReqs []string           `json:"application_reqs"`
}
