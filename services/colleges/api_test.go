package colleges

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"collegeatlas-backend/lib/cache"
	"collegeatlas-backend/services/colleges/insight"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc).Register(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(recorder, request)

	body := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, body
}

func TestHandlerListAll(t *testing.T) {
	store := cache.NewMemoryStore(16)
	seedList(t, store, makeColleges(3))
	router := newTestRouter(newTestService(store, Config{}))

	recorder, body := doRequest(t, router, "/colleges/list-all")
	require.Equal(t, http.StatusOK, recorder.Code)

	var records []College
	require.NoError(t, json.Unmarshal(body["colleges"], &records))
	require.Len(t, records, 3)
	require.Equal(t, "College 0", records[0].Name)
}

func TestHandlerListAllUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	store := cache.NewMemoryStore(16)
	router := newTestRouter(newTestService(store, Config{Catalog: CatalogConfig{BaseUrl: upstream.URL}}))

	recorder, body := doRequest(t, router, "/colleges/list-all")
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, "null", string(body["colleges"]))
}

func TestHandlerSearchByName(t *testing.T) {
	store := cache.NewMemoryStore(16)
	seedList(t, store, []College{
		{IpedsId: "1", Name: "Harvard University"},
		{IpedsId: "2", Name: "Yale University"},
	})
	router := newTestRouter(newTestService(store, Config{}))

	recorder, body := doRequest(t, router, "/colleges/with-params?name=harvard")
	require.Equal(t, http.StatusOK, recorder.Code)

	var records []College
	require.NoError(t, json.Unmarshal(body["colleges"], &records))
	require.Len(t, records, 1)
	require.Equal(t, "Harvard University", records[0].Name)
}

func TestHandlerSearchMalformedRadius(t *testing.T) {
	store := cache.NewMemoryStore(16)
	seedList(t, store, makeColleges(2))
	router := newTestRouter(newTestService(store, Config{}))

	recorder, _ := doRequest(t, router,
		"/colleges/with-params?max_distance=abc&starting_point="+url.QueryEscape("Boston, MA"))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandlerInfo(t *testing.T) {
	profile := newProfileServer(t, buildProfilePage(
		"https://example.edu/admissions",
		"https://example.edu/apply",
		"https://example.edu/financial-aid",
	))
	ai := newInsightServer(t)
	store := cache.NewMemoryStore(16)
	router := newTestRouter(newEnrichService(store, profile, ai))

	recorder, body := doRequest(t, router, "/college/info/123?name="+url.QueryEscape("Example University"))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "null", string(body["msg"]))

	var info CollegeInfo
	require.NoError(t, json.Unmarshal(body["college"], &info))
	require.Equal(t, "https://example.edu/admissions", info.AdmissionsUrl)
	require.Equal(t, "60551", info.AdmissionInfo.TotalApplicants)
}

func TestHandlerInfoFailure(t *testing.T) {
	profile := newProfileServer(t, `<html><body>nothing here</body></html>`)
	ai := newInsightServer(t)
	store := cache.NewMemoryStore(16)
	router := newTestRouter(newEnrichService(store, profile, ai))

	recorder, body := doRequest(t, router, "/college/info/123?name=Example")
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, "null", string(body["college"]))
	require.JSONEq(t, `"unable to retrieve college info"`, string(body["msg"]))
}

func TestHandlerHowReviewed(t *testing.T) {
	ai := newInsightServer(t)
	store := cache.NewMemoryStore(16)
	svc := NewService(store, Config{Insight: insight.Config{BaseUrl: ai.server.URL}})
	router := newTestRouter(svc)

	recorder, body := doRequest(t, router, "/colleges/how-reviewed?name="+url.QueryEscape("Example University"))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `"Holistic review with two readers."`, string(body["how_reviewed"]))
}

func TestHandlerAsk(t *testing.T) {
	ai := newInsightServer(t)
	store := cache.NewMemoryStore(16)
	svc := NewService(store, Config{Insight: insight.Config{BaseUrl: ai.server.URL}})
	router := newTestRouter(svc)

	recorder, body := doRequest(t, router, "/colleges/ask?question="+url.QueryEscape("When is the deadline?"))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `"The early deadline is November 1."`, string(body["answer"]))
}
