package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/calsync/calsync-server/internal/config"
	"github.com/calsync/calsync-server/internal/provider/countriesnow"
	"github.com/calsync/calsync-server/internal/provider/nager"
	"github.com/calsync/calsync-server/internal/service"
	"github.com/calsync/calsync-server/internal/store/sqlite"
	"github.com/calsync/calsync-server/internal/validation"
)

// fakeUpstream serves both the holiday and the country data APIs.
type fakeUpstream struct {
	server          *httptest.Server
	holidayCalls    atomic.Int32
	failHolidays    atomic.Bool
	failFlag        atomic.Bool
	failCountryInfo atomic.Bool
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	up := &fakeUpstream{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /nager/AvailableCountries", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]string{
			{"countryCode": "US", "name": "United States"},
			{"countryCode": "DE", "name": "Germany"},
		})
	})
	mux.HandleFunc("GET /nager/PublicHolidays/{year}/{code}", func(w http.ResponseWriter, r *http.Request) {
		up.holidayCalls.Add(1)
		if up.failHolidays.Load() {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		year := r.PathValue("year")
		writeJSON(w, []map[string]string{
			{"date": year + "-01-01", "name": "New Year", "countryCode": r.PathValue("code")},
			{"date": year + "-12-25", "name": "Christmas", "countryCode": r.PathValue("code")},
		})
	})
	mux.HandleFunc("GET /nager/CountryInfo/{code}", func(w http.ResponseWriter, r *http.Request) {
		if up.failCountryInfo.Load() {
			http.Error(w, "unknown", http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{
			"commonName":   "United States",
			"officialName": "United States of America",
			"countryCode":  r.PathValue("code"),
			"region":       "Americas",
			"borders":      []any{},
		})
	})
	mux.HandleFunc("POST /cn/flag/images", func(w http.ResponseWriter, _ *http.Request) {
		if up.failFlag.Load() {
			writeJSON(w, map[string]any{"error": true, "msg": "country not found"})
			return
		}
		writeJSON(w, map[string]any{
			"error": false,
			"data":  map[string]string{"name": "United States", "flag": "https://flags.test/us.png"},
		})
	})
	mux.HandleFunc("POST /cn/population", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"error": false,
			"data": map[string]any{
				"country":          "United States",
				"code":             "USA",
				"iso3":             "USA",
				"populationCounts": []map[string]int64{{"year": 2025, "value": 331}},
			},
		})
	})

	up.server = httptest.NewServer(mux)
	t.Cleanup(up.server.Close)
	return up
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api      humatest.TestAPI
	store    *sqlite.Store
	upstream *fakeUpstream
}

// setupTestServer wires the real services to a temp SQLite store and a fake upstream.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	up := newFakeUpstream(t)
	providers := config.ProvidersConfig{
		NagerBaseURL:        up.server.URL + "/nager",
		CountriesNowBaseURL: up.server.URL + "/cn",
		Timeout:             5 * time.Second,
	}
	holidays := nager.New(providers, logger)
	media := countriesnow.New(providers, logger)
	v := validation.New()

	services := &Services{
		Country:  service.NewCountryService(holidays, holidays, media, logger),
		Calendar: service.NewCalendarService(st, holidays, v, logger),
		User:     service.NewUserService(st, v, logger),
	}

	srv := NewServer(st, services, config.ServerConfig{CORSOrigins: []string{"*"}}, logger)

	return &testServer{
		Server:   srv,
		api:      humatest.Wrap(t, srv.API()),
		store:    st,
		upstream: up,
	}
}

// envelope is the decoded form of both success and error responses.
type envelope struct {
	V       int               `json:"v"`
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), "body: %s", resp.Body.String())
	return env
}

func decodeData[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	env := decodeEnvelope(t, resp)
	require.True(t, env.Success, "expected success, got %s", resp.Body.String())
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

// createUser creates a user through the API and returns its ID.
func (ts *testServer) createUser(t *testing.T, name, email string) int64 {
	t.Helper()
	resp := ts.api.Post("/api/v1/users", map[string]any{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	user := decodeData[struct {
		ID int64 `json:"id"`
	}](t, resp)
	return user.ID
}
