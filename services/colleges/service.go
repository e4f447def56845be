package colleges

import (
	"errors"
	"time"

	"collegeatlas-backend/lib/cache"
	"collegeatlas-backend/lib/restyutil"
	"collegeatlas-backend/services/colleges/insight"

	"github.com/go-resty/resty/v2"
)

// Cache entries live for a day; the upstream dataset changes rarely and the
// collaborator answers are expensive.
const cacheTtl = 86400 * time.Second

// Cache key layout, shared with previous deployments of this service. These
// are load-bearing: existing Redis data must keep resolving.
const (
	listCacheKey      = "@COLLEGE_LIST/CACHE"
	dataKeyPrefix     = "COLLEGE_DATA_"
	reviewedKeyPrefix = "COLLEGE_REVIEWED_NAME_"
)

// ErrBadInput marks failures caused by the caller's parameters rather than
// an upstream or this service.
var ErrBadInput = errors.New("bad input")

type CatalogConfig struct {
	BaseUrl  string `json:"base_url"`
	PageSize int    `json:"page_size"`
	// Category, when set, narrows every page request to catalog rows whose
	// classification matches. It is never applied implicitly.
	Category string `json:"category"`
}

type GeocodingConfig struct {
	BaseUrl   string `json:"base_url"`
	AccessKey string `json:"access_key"`
}

// ProfileConfig describes where the enrichment scrape finds its fields on
// the upstream profile page. The positional child indices are tied to the
// exact structure of that page; keeping them here means a markup change is
// a config change.
type ProfileConfig struct {
	BaseUrl          string `json:"base_url"`
	InfoContainerId  string `json:"info_container_id"`
	StatsContainerId string `json:"stats_container_id"`
	FinaidId         string `json:"finaid_id"`
	AdmissionsIndex  int    `json:"admissions_index"`
	ApplyIndex       int    `json:"apply_index"`
	FinaidIndex      int    `json:"finaid_index"`
}

type Config struct {
	Catalog   CatalogConfig   `json:"catalog"`
	Geocoding GeocodingConfig `json:"geocoding"`
	Profile   ProfileConfig   `json:"profile"`
	Insight   insight.Config  `json:"insight"`
}

const defaultPageSize = 100

func (c *Config) applyDefaults() {
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = defaultPageSize
	}
	if c.Profile.InfoContainerId == "" {
		c.Profile.InfoContainerId = "collegeinfo"
	}
	if c.Profile.StatsContainerId == "" {
		c.Profile.StatsContainerId = "admission-statistics"
	}
	if c.Profile.FinaidId == "" {
		c.Profile.FinaidId = "finaid"
	}
	if c.Profile.AdmissionsIndex == 0 && c.Profile.ApplyIndex == 0 && c.Profile.FinaidIndex == 0 {
		c.Profile.AdmissionsIndex = 9
		c.Profile.ApplyIndex = 16
		c.Profile.FinaidIndex = 24
	}
}

// Service aggregates the upstream catalog, the profile page scrape, the
// geocoder and the insight collaborator behind a shared cache. It is safe
// for concurrent use; per-request state lives on the stack.
type Service struct {
	store   cache.Store
	cfg     Config
	client  *resty.Client
	insight insight.Client
}

func NewService(store cache.Store, cfg Config) Service {
	cfg.applyDefaults()

	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return Service{
		store:   store,
		cfg:     cfg,
		client:  client,
		insight: insight.NewClient(cfg.Insight),
	}
}
