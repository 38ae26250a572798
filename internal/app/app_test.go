package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lfreitas/stockpulse/config"
)

func testConfig(cacheEnabled bool) config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Market: config.MarketConfig{
			BaseURL:  "https://data.example.test/api/v3",
			Database: "FSE",
			APIKey:   "k",
		},
		Cache: config.CacheConfig{Enabled: cacheEnabled},
		Postgres: config.PostgresConfig{
			Host: "127.0.0.1", Port: 54329, User: "x", Password: "y", DBName: "z", SSLMode: "disable",
		},
	}
}

// TestInitializeApp_CacheDisabled runs fully stateless: no DB is opened
// and readiness does not depend on one.
func TestInitializeApp_CacheDisabled(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = testConfig(false)

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns an error
// when caching is enabled but the DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = testConfig(true)

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_CacheEnabledHappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectPing()

	oldOpener := postgresOpener
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() {
		postgresOpener = oldOpener
		_ = db.Close()
	})

	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = testConfig(true)

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: %v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	cleanup()
}

func TestInitPostgres_InvalidHost(t *testing.T) {
	db, err := InitPostgres(testConfig(true))
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}
