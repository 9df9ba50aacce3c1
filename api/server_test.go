package api_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/garnizeh/fallwatch/api"
	dbfs "github.com/garnizeh/fallwatch/db"
	"github.com/garnizeh/fallwatch/internal/db"
	sqlite "github.com/garnizeh/fallwatch/internal/repository/sqlite"
)

// setupServer starts a test server backed by a fresh migrated database with
// the readiness gate already resolved.
func setupServer(t *testing.T) (*httptest.Server, *sqlite.SQLiteRepo) {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	gate := api.NewGate()
	gate.Ready(&api.Store{Users: repo, People: repo, Devices: repo})

	srv := httptest.NewServer(api.SetupRoutes("test", "test", gate))
	t.Cleanup(srv.Close)

	return srv, repo
}
