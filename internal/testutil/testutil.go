// Package testutil provides an in-memory database and a controllable clock for tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"roomboard/backend/internal/database"

	"gorm.io/gorm"
)

// TestDSN is an in-memory SQLite database with foreign keys enforced.
const TestDSN = ":memory:?_pragma=foreign_keys(1)"

// NewTestDB opens a fresh in-memory database that is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", TestDSN)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewTestStore returns a Store over a fresh in-memory database with the schema
// already created. Seeding is disabled so tests start from empty tables.
func NewTestStore(t *testing.T, clock *Clock, roomExpiry bool) *database.Store {
	t.Helper()

	store := database.NewStore(NewTestDB(t), database.Options{
		MessageTTL: 24 * time.Hour,
		RoomExpiry: roomExpiry,
		Now:        clock.Now,
	})
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return store
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
