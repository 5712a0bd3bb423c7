package analysis

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"skillgap/internal/infrastructure"
	"skillgap/internal/loader"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV output: %v", err)
	}
	return rows
}

func TestExportCSV_Gaps(t *testing.T) {
	service := newTestService(&stubSource{tables: fixtureTables()})

	data, err := service.ExportCSV(TableGaps)
	if err != nil {
		t.Fatal(err)
	}

	rows := parseCSV(t, data)
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "employee_id" || rows[0][9] != "severity" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	// E1/Python: niveau 2, requis 4, brèche 2, poids 2, sévérité 4
	first := rows[1]
	if first[0] != "E1" || first[4] != "Python" || first[7] != "2" || first[9] != "4" {
		t.Errorf("unexpected first row: %v", first)
	}
}

func TestExportCSV_GapsUndefinedFieldsEmpty(t *testing.T) {
	tables := fixtureTables()
	// E3 sans aucune évaluation: ligne de remplissage aux champs indéfinis
	tables.Employees = append(tables.Employees, tables.Employees[0])
	tables.Employees[2].EmployeeID = "E3"
	service := newTestService(&stubSource{tables: tables})

	data, err := service.ExportCSV(TableGaps)
	if err != nil {
		t.Fatal(err)
	}

	rows := parseCSV(t, data)
	last := rows[len(rows)-1]
	if last[0] != "E3" {
		t.Fatalf("expected the placeholder row last, got %v", last)
	}
	for _, i := range []int{4, 5, 6, 7} {
		if last[i] != "" {
			t.Errorf("column %d: expected empty cell for undefined value, got %q", i, last[i])
		}
	}
	if last[8] != "1" {
		t.Errorf("expected default weight 1, got %q", last[8])
	}
}

func TestExportCSV_Summary(t *testing.T) {
	service := newTestService(&stubSource{tables: fixtureTables()})

	data, err := service.ExportCSV(TableSummary)
	if err != nil {
		t.Fatal(err)
	}

	rows := parseCSV(t, data)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "Backend" || rows[1][1] != "2" || rows[1][2] != "50" {
		t.Errorf("unexpected summary row: %v", rows[1])
	}
}

func TestExportCSV_Recommendations(t *testing.T) {
	service := newTestService(&stubSource{tables: fixtureTables()})

	data, err := service.ExportCSV(TableRecommendations)
	if err != nil {
		t.Fatal(err)
	}

	rows := parseCSV(t, data)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "E1" || rows[1][8] != "C1" || rows[1][11] != "12" {
		t.Errorf("unexpected recommendation row: %v", rows[1])
	}
}

// Les en-têtes sont écrits même sans aucune ligne de données
func TestExportCSV_EmptyResultKeepsHeaders(t *testing.T) {
	service := newTestService(&stubSource{tables: &loader.Tables{}})

	for _, table := range []string{TableGaps, TableSummary, TableCritical, TableRecommendations} {
		data, err := service.ExportCSV(table)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
		rows := parseCSV(t, data)
		if len(rows) != 1 {
			t.Errorf("table %s: expected a lone header row, got %d rows", table, len(rows))
		}
	}
}

func TestExportCSV_UnknownTable(t *testing.T) {
	service := newTestService(&stubSource{tables: fixtureTables()})

	_, err := service.ExportCSV("salaries")
	if err == nil || !strings.Contains(err.Error(), "unknown export table") {
		t.Errorf("expected an unknown-table error, got %v", err)
	}
}

func TestExportGapsParquet(t *testing.T) {
	service := newTestService(&stubSource{tables: fixtureTables()})

	data, err := service.ExportGapsParquet()
	if err != nil {
		t.Fatal(err)
	}

	// Nombre magique du format Parquet en tête et en queue de fichier
	if !bytes.HasPrefix(data, []byte("PAR1")) {
		t.Error("expected the PAR1 magic prefix")
	}
	if !bytes.HasSuffix(data, []byte("PAR1")) {
		t.Error("expected the PAR1 magic suffix")
	}
}

func TestExportGapsParquet_EmptySnapshot(t *testing.T) {
	service := newTestService(&stubSource{tables: &loader.Tables{}})

	data, err := service.ExportGapsParquet()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("expected a valid parquet file even without rows")
	}
}

// ========================================
// Benchmarks
// ========================================

func BenchmarkExportCSV_Gaps(b *testing.B) {
	service := NewService(&stubSource{tables: fixtureTables()}, infrastructure.NewInMemoryCache(), 10, 5*time.Minute)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := service.ExportCSV(TableGaps); err != nil {
			b.Fatal(err)
		}
	}
}
