//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"

	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/testutil/testdb"
)

func TestSchemaVersion(t *testing.T) {
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	ver, err := db.SchemaVersion(h.DB)
	if err != nil {
		t.Fatal(err)
	}
	if ver < 2 {
		t.Fatalf("версия схемы %d, миграции не накатаны", ver)
	}
}
