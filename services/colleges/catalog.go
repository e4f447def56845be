package colleges

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/codes"
)

type catalogPage struct {
	TotalCount int       `json:"total_count"`
	Results    []College `json:"results"`
}

// ListAll returns every college in the upstream catalog, serving from the
// cache when it can. On a miss it pages through the catalog until the total
// declared by the first page is reached, then caches the full set. Cache
// problems never fail the call; a failed page request always does, and
// nothing partial is ever cached.
func (s Service) ListAll(ctx context.Context) ([]College, error) {
	ctx, span := tracer.Start(ctx, "ListAll")
	defer span.End()

	if cached, ok := s.readCachedList(ctx); ok {
		return cached, nil
	}

	first, err := s.fetchCatalogPage(ctx, 0)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch first catalog page")
		return nil, err
	}

	total := first.TotalCount
	all := make([]College, 0, total)
	all = append(all, first.Results...)

	offset := s.cfg.Catalog.PageSize
	for len(all) < total {
		page, err := s.fetchCatalogPage(ctx, offset)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch catalog page")
			return nil, err
		}
		if len(page.Results) == 0 {
			// upstream shrank below the declared total; bailing beats
			// spinning on the same offset forever
			err := fmt.Errorf("catalog returned no rows at offset %d with %d of %d accumulated", offset, len(all), total)
			span.RecordError(err)
			span.SetStatus(codes.Error, "catalog stopped making progress")
			return nil, err
		}
		all = append(all, page.Results...)
		offset += s.cfg.Catalog.PageSize
	}

	s.writeCachedList(ctx, all)
	return all, nil
}

func (s Service) fetchCatalogPage(ctx context.Context, offset int) (catalogPage, error) {
	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(s.cfg.Catalog.PageSize)).
		SetQueryParam("offset", strconv.Itoa(offset))
	if s.cfg.Catalog.Category != "" {
		req.SetQueryParam("refine", fmt.Sprintf("naics_desc:%q", s.cfg.Catalog.Category))
	}

	res, err := req.Get(s.cfg.Catalog.BaseUrl)
	if err != nil {
		return catalogPage{}, err
	}
	if res.IsError() {
		return catalogPage{}, fmt.Errorf("catalog: unexpected status %d at offset %d", res.StatusCode(), offset)
	}

	var page catalogPage
	if err := json.Unmarshal(res.Body(), &page); err != nil {
		return catalogPage{}, fmt.Errorf("catalog: %w", err)
	}
	return page, nil
}

func (s Service) readCachedList(ctx context.Context) ([]College, bool) {
	blob, hit, err := s.store.Get(ctx, listCacheKey)
	if err != nil {
		slog.WarnContext(ctx, "college list cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}

	var cached []College
	if err := json.Unmarshal(blob, &cached); err != nil {
		slog.WarnContext(ctx, "college list cache entry is unreadable", "err", err)
		return nil, false
	}
	return cached, true
}

func (s Service) writeCachedList(ctx context.Context, all []College) {
	blob, err := json.Marshal(all)
	if err != nil {
		slog.WarnContext(ctx, "failed to serialize college list for caching", "err", err)
		return
	}
	if err := s.store.Set(ctx, listCacheKey, blob, cacheTtl); err != nil {
		slog.WarnContext(ctx, "college list cache write failed", "err", err)
	}
}
