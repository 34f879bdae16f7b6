package preferencestore

import (
	"errors"
	"testing"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestStore_LoadMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Load(ctx, "browser-1", models.PrefViewMode); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "browser-1", models.PrefViewMode, []byte(`{"mode":"chart"}`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, "browser-1", models.PrefViewMode, []byte(`{"mode":"table"}`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := store.Load(ctx, "browser-1", models.PrefViewMode)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(raw) != `{"mode":"table"}` {
		t.Errorf("Load() = %s, want table", raw)
	}

	n, err := db.Collection(CollectionName).CountDocuments(ctx, bson.M{"browser_id": "browser-1"})
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if n != 1 {
		t.Errorf("documents = %d, want 1 (overwritten in place)", n)
	}
}

func TestStore_WithBridge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	b := NewBridge(New(db), zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	Set(ctx, b, "browser-1", models.PrefComparisonMode, models.ComparisonModePreference{Mode: models.MoM})
	Set(ctx, b, "browser-1", models.PrefSections, models.SectionPreference{Collapsed: map[string]bool{"costs": true}})

	if got := Get(ctx, b, "browser-1", models.PrefComparisonMode, models.DefaultComparisonModePreference()); got.Mode != models.MoM {
		t.Errorf("comparison mode = %q, want mom", got.Mode)
	}
	sections := Get(ctx, b, "browser-1", models.PrefSections, models.DefaultSectionPreference())
	if !sections.Collapsed["costs"] {
		t.Errorf("sections = %v, want costs collapsed", sections.Collapsed)
	}
}
