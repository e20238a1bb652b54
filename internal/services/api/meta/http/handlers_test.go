package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkverse/internal/adapters/graphql"
	phttp "inkverse/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, d Deps, method, path string) (int, json.RawMessage) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env.Data
}

func TestHealth(t *testing.T) {
	started := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	code, data := serve(t, Deps{ServiceName: "inkverse-api", StartedAt: started}, http.MethodGet, "/health")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var got HealthResponse
	_ = json.Unmarshal(data, &got)
	if !got.OK || got.Service != "inkverse-api" || got.Started != "2026-10-19T13:00:00Z" {
		t.Fatalf("health = %+v", got)
	}
}

func TestCache_StatsAndReset(t *testing.T) {
	cache := graphql.NewCache()
	if err := cache.Write("getList:{}", json.RawMessage(`{"getList":{"__typename":"List","id":"9","name":"x"}}`)); err != nil {
		t.Fatal(err)
	}
	d := Deps{Cache: cache}

	code, data := serve(t, d, http.MethodGet, "/cache")
	var got CacheResponse
	_ = json.Unmarshal(data, &got)
	if code != http.StatusOK || got.Roots != 1 || got.Entities != 1 {
		t.Fatalf("status=%d stats=%+v", code, got)
	}

	code, data = serve(t, d, http.MethodPost, "/cache/reset")
	got = CacheResponse{}
	_ = json.Unmarshal(data, &got)
	if code != http.StatusOK || !got.Reset || got.Roots != 0 || got.Entities != 0 {
		t.Fatalf("status=%d reset=%+v", code, got)
	}
}

func TestCache_Unconfigured(t *testing.T) {
	if code, _ := serve(t, Deps{}, http.MethodGet, "/cache"); code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", code)
	}
}

func TestVersion(t *testing.T) {
	code, data := serve(t, Deps{}, http.MethodGet, "/version")
	var got struct {
		Service string `json:"service"`
	}
	_ = json.Unmarshal(data, &got)
	if code != http.StatusOK || got.Service != "inkverse" {
		t.Fatalf("status=%d version=%s", code, data)
	}
}

func TestService_ReportsScreens(t *testing.T) {
	started := time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)
	d := Deps{ServiceName: "inkverse-api", StartedAt: started}

	_, data := serve(t, d, http.MethodGet, "/service")
	var bare ServiceResponse
	_ = json.Unmarshal(data, &bare)
	if bare.Name != "inkverse-api" || bare.Screens != nil {
		t.Fatalf("service = %+v", bare)
	}

	d.Screens = func() (ScreensInfo, bool) { return ScreensInfo{PageSize: 30, SearchDebounce: "300ms"}, true }
	_, data = serve(t, d, http.MethodGet, "/service")
	var got ServiceResponse
	_ = json.Unmarshal(data, &got)
	if got.Screens == nil || got.Screens.PageSize != 30 || got.Screens.SearchDebounce != "300ms" {
		t.Fatalf("service = %s", data)
	}
}
