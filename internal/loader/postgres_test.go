package loader_test

import (
	"testing"

	"skillgap/internal/loader"
	"skillgap/internal/testhelpers"
)

// Tests d'intégration: nécessitent une base seedée (cmd/seed)

// La source Postgres honore le même contrat que la source CSV
var _ loader.Source = (*loader.PostgresSource)(nil)

func TestPostgresSource_LoadTables(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)

	ctx := testhelpers.SetupTestContext(t)
	defer ctx.Cleanup()

	tables, err := ctx.Source.LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	if len(tables.Employees) == 0 {
		t.Error("expected seeded employees")
	}
	if len(tables.RoleRequirements) == 0 {
		t.Error("expected seeded role requirements")
	}
	if len(tables.Courses) == 0 {
		t.Error("expected seeded courses")
	}

	for _, e := range tables.Employees {
		if e.EmployeeID == "" || e.CurrentRole == "" {
			t.Fatalf("incomplete employee row: %+v", e)
		}
	}
}

func TestPostgresSource_FingerprintStable(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)

	ctx := testhelpers.SetupTestContext(t)
	defer ctx.Cleanup()

	first, err := ctx.Source.LoadTables()
	if err != nil {
		t.Fatal(err)
	}
	second, err := ctx.Source.LoadTables()
	if err != nil {
		t.Fatal(err)
	}

	// Deux chargements du même contenu donnent la même empreinte
	if first.Fingerprint() != second.Fingerprint() {
		t.Error("expected a stable fingerprint across identical loads")
	}
}

func BenchmarkPostgresSource_LoadTables(b *testing.B) {
	testhelpers.SkipIfNoDatabase(b)

	ctx := testhelpers.SetupTestContext(b)
	defer ctx.Cleanup()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := ctx.Source.LoadTables(); err != nil {
			b.Fatal(err)
		}
	}
}
