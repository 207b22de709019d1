// Package databasetest provides migrated throwaway databases for tests.
package databasetest

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/visioscript-backend/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Epoch is the first timestamp handed out by the test clock.
var Epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// New returns a migrated SQLite handle in t's temp dir. Its clock advances by
// one second on every read so created_at ordering is deterministic.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	var ticks atomic.Int64
	clock := func(c *gorm.Config) {
		c.NowFunc = func() time.Time {
			return Epoch.Add(time.Duration(ticks.Add(1)) * time.Second)
		}
	}

	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), clock)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
