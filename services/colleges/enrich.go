package colleges

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"collegeatlas-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// Info assembles the enrichment record for one college: the three URLs
// scraped from its profile page plus the collaborator's statistics and
// requirements. Results are cached per college under the IPEDS id; nothing
// is cached unless every step succeeded.
func (s Service) Info(ctx context.Context, ipedsId, name string) (CollegeInfo, error) {
	ctx, span := tracer.Start(ctx, "Info")
	defer span.End()

	key := dataKeyPrefix + ipedsId

	if blob, hit := s.readCache(ctx, key); hit {
		var cached CollegeInfo
		if err := json.Unmarshal(blob, &cached); err == nil {
			return cached, nil
		}
		slog.WarnContext(ctx, "college info cache entry is unreadable", "key", key)
	}

	doc, err := s.fetchProfileDocument(ctx, ipedsId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch profile page")
		return CollegeInfo{}, err
	}

	info, err := s.extractProfileLinks(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "profile page structure did not match")
		return CollegeInfo{}, err
	}

	statsFragment, err := s.extractStatsFragment(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "profile page statistics fragment missing")
		return CollegeInfo{}, err
	}

	info.AdmissionInfo, err = s.insight.ApplicationStatistics(ctx, statsFragment)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "statistics collaborator failed")
		return CollegeInfo{}, err
	}

	info.ApplicationReqs, err = s.insight.ApplicationRequirements(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "requirements collaborator failed")
		return CollegeInfo{}, err
	}

	s.writeCache(ctx, key, info)
	return info, nil
}

// HowReviewed answers "how does this college review applications", cached
// verbatim under the display name.
func (s Service) HowReviewed(ctx context.Context, name string) (string, error) {
	ctx, span := tracer.Start(ctx, "HowReviewed")
	defer span.End()

	key := reviewedKeyPrefix + name

	if blob, hit := s.readCache(ctx, key); hit {
		return string(blob), nil
	}

	text, err := s.insight.HowReviewed(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "review collaborator failed")
		return "", err
	}

	if err := s.store.Set(ctx, key, []byte(text), cacheTtl); err != nil {
		slog.WarnContext(ctx, "review cache write failed", "key", key, "err", err)
	}
	return text, nil
}

// Ask forwards a free-form question to the collaborator. Answers are not
// cached; the same question rarely comes twice.
func (s Service) Ask(ctx context.Context, question string) (string, error) {
	ctx, span := tracer.Start(ctx, "Ask")
	defer span.End()

	answer, err := s.insight.Ask(ctx, question)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ask collaborator failed")
		return "", err
	}
	return answer, nil
}

func (s Service) fetchProfileDocument(ctx context.Context, ipedsId string) (*goquery.Document, error) {
	res, err := s.client.R().
		SetContext(ctx).
		Get(s.cfg.Profile.BaseUrl + "/" + ipedsId)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("profile: unexpected status %d for %s", res.StatusCode(), ipedsId)
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}

// extractProfileLinks pulls the admissions, application and financial aid
// URLs out of fixed child positions of the info container. Any missing
// element is a structural failure, reported, never a panic.
func (s Service) extractProfileLinks(doc *goquery.Document) (CollegeInfo, error) {
	container := doc.Find("#" + s.cfg.Profile.InfoContainerId)
	if container.Length() == 0 {
		return CollegeInfo{}, fmt.Errorf("profile: info container #%s not found", s.cfg.Profile.InfoContainerId)
	}

	type profileField struct {
		name  string
		index int
		dest  *string
	}

	var info CollegeInfo
	fields := []profileField{
		{"admissions_url", s.cfg.Profile.AdmissionsIndex, &info.AdmissionsUrl},
		{"apply_url", s.cfg.Profile.ApplyIndex, &info.ApplyUrl},
		{"finaid_url", s.cfg.Profile.FinaidIndex, &info.FinaidUrl},
	}

	for _, field := range fields {
		value, ok := htmlutil.ChildText(container, field.index)
		if !ok {
			return CollegeInfo{}, fmt.Errorf(
				"profile: field %s missing at child index %d of #%s",
				field.name, field.index, s.cfg.Profile.InfoContainerId,
			)
		}
		*field.dest = value
	}

	// the finaid section is part of the page contract but nothing in it is
	// parsed here
	if doc.Find("#"+s.cfg.Profile.FinaidId).Length() == 0 {
		slog.Debug("profile finaid section missing", "id", s.cfg.Profile.FinaidId)
	}

	return info, nil
}

func (s Service) extractStatsFragment(doc *goquery.Document) (string, error) {
	stats := doc.Find("#" + s.cfg.Profile.StatsContainerId)
	if stats.Length() == 0 {
		return "", fmt.Errorf("profile: statistics container #%s not found", s.cfg.Profile.StatsContainerId)
	}
	fragment, err := goquery.OuterHtml(stats)
	if err != nil {
		return "", fmt.Errorf("profile: %w", err)
	}
	return fragment, nil
}

func (s Service) readCache(ctx context.Context, key string) ([]byte, bool) {
	blob, hit, err := s.store.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "cache read failed", "key", key, "err", err)
		return nil, false
	}
	return blob, hit
}

func (s Service) writeCache(ctx context.Context, key string, value any) {
	blob, err := json.Marshal(value)
	if err != nil {
		slog.WarnContext(ctx, "failed to serialize cache entry", "key", key, "err", err)
		return
	}
	if err := s.store.Set(ctx, key, blob, cacheTtl); err != nil {
		slog.WarnContext(ctx, "cache write failed", "key", key, "err", err)
	}
}
