package postgres_test

import (
	"testing"

	"vcdesk/pkg/storage/postgres"
)

// go test -v --run ^TestCreateDatabaseIdempotent$
func TestCreateDatabaseIdempotent(t *testing.T) {
	newTestClient(t)

	cfg := testConfig()
	for range 2 {
		if err := postgres.CreateDatabase(cfg, "dev"); err != nil {
			t.Fatalf("create database failed: %v", err)
		}
	}
}
