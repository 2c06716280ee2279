package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calsync/calsync-server/internal/domain"
	domainerrors "github.com/calsync/calsync-server/internal/errors"
)

type cliEnv struct {
	dbPath string
}

// setupCLI points the CLI at a temp database and a fake holiday API.
func setupCLI(t *testing.T) *cliEnv {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /PublicHolidays/{year}/{code}", func(w http.ResponseWriter, r *http.Request) {
		year := r.PathValue("year")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"date": year + "-01-01", "name": "New Year"},
			{"date": year + "-12-25", "name": "Christmas"},
		})
	})
	mux.HandleFunc("GET /AvailableCountries", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"countryCode":"US","name":"United States"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	for _, k := range []string{"ENV", "LOG_LEVEL", "CONFIG_FILE", "DATABASE_DRIVER", "DATABASE_PATH", "DATABASE_DSN", "COUNTRIES_NOW_API_BASE_URL", "PROVIDER_TIMEOUT"} {
		t.Setenv(k, "")
	}
	t.Setenv("NAGER_API_BASE_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	return &cliEnv{dbPath: filepath.Join(t.TempDir(), "cli.db")}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{
		"--db-path=" + e.dbPath,
		"--env-file=" + filepath.Join(t.TempDir(), "none.env"),
	}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_SyncFlow(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "users", "create", "--name", "Ada", "--email", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user 1 (Ada <ada@example.com>)")

	out, err = env.run(t, "calendar", "sync", "1", "--country", "us", "--year", "2025", "--holiday", "New Year")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully added 1 holidays to calendar")
	assert.Contains(t, out, "2025-01-01")

	out, err = env.run(t, "--json", "calendar", "events", "1")
	require.NoError(t, err)

	var events []domain.CalendarEvent
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "New Year", events[0].Title)
	assert.Equal(t, "US", events[0].CountryCode)
}

func TestCLI_SyncUnknownUser(t *testing.T) {
	env := setupCLI(t)

	_, err := env.run(t, "calendar", "sync", "7", "--country", "US", "--year", "2025")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestCLI_UsersListJSON(t *testing.T) {
	env := setupCLI(t)

	_, err := env.run(t, "users", "create", "--name", "Ada", "--email", "ada@example.com")
	require.NoError(t, err)

	out, err := env.run(t, "--json", "users", "list")
	require.NoError(t, err)

	var users []domain.User
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "ada@example.com", users[0].Email)
}

func TestCLI_HolidaysList(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "holidays", "list", "US", "2026")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-01-01")
	assert.Contains(t, out, "Christmas")
}

func TestCLI_ArgumentErrors(t *testing.T) {
	env := setupCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad user id", []string{"calendar", "events", "abc"}},
		{"zero user id", []string{"calendar", "events", "0"}},
		{"bad year", []string{"holidays", "list", "US", "next"}},
		{"missing country flag", []string{"calendar", "sync", "1", "--year", "2025"}},
		{"missing email", []string{"users", "create", "--name", "Ada"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
