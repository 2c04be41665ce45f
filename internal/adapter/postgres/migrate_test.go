package postgres

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrations_Embedded(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(Migrations(), ".")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no embedded migrations")
	}

	body, err := fs.ReadFile(Migrations(), entries[0].Name())
	if err != nil {
		t.Fatalf("read %s: %v", entries[0].Name(), err)
	}
	for _, want := range []string{"-- +goose Up", "-- +goose Down", "ON DELETE RESTRICT", "ck_geographic_records_coords"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("migration %s missing %q", entries[0].Name(), want)
		}
	}
}
