package colleges

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"collegeatlas-backend/lib/cache"

	"github.com/stretchr/testify/require"
)

func makeColleges(n int) []College {
	out := make([]College, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, College{
			IpedsId:   fmt.Sprintf("%06d", i),
			Name:      fmt.Sprintf("College %d", i),
			City:      "Springfield",
			State:     "IL",
			NaicsDesc: "Colleges, Universities, and Professional Schools",
		})
	}
	return out
}

// catalogServer fakes the upstream records endpoint: limit/offset paging
// over a fixed dataset with a total_count on every page.
type catalogServer struct {
	server   *httptest.Server
	records  []College
	requests atomic.Int64
}

func newCatalogServer(t *testing.T, records []College) *catalogServer {
	cs := &catalogServer{records: records}
	cs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.requests.Add(1)

		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		require.NoError(t, err)
		offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
		require.NoError(t, err)

		end := offset + limit
		if end > len(cs.records) {
			end = len(cs.records)
		}
		page := []College{}
		if offset < len(cs.records) {
			page = cs.records[offset:end]
		}

		w.Header().Set("content-type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"total_count": len(cs.records),
			"results":     page,
		})
	}))
	t.Cleanup(cs.server.Close)
	return cs
}

func seedList(t *testing.T, store cache.Store, records []College) {
	blob, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), listCacheKey, blob, cacheTtl))
}

func newTestService(store cache.Store, cfg Config) Service {
	return NewService(store, cfg)
}
