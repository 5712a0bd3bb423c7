package loader

import (
	"database/sql"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"skillgap/internal/engine"
)

// writeFixtures écrit les quatre CSV dans un répertoire temporaire
func writeFixtures(t *testing.T, overrides map[string]string) string {
	t.Helper()

	files := map[string]string{
		employeesFile: "employee_id,name,surname,current_role\n" +
			"E1,Lucía,García,Backend\n" +
			"E2,Carlos,Pérez,Backend\n",
		requirementsFile: "role,skill_name,required_level,weight\n" +
			"Backend,Python,4,2\n" +
			"Backend,SQL,3,1\n",
		skillRecordsFile: "employee_id,skill_name,skill_level\n" +
			"E1,Python,2\n" +
			"E1,SQL,3\n" +
			"E2,Python,5\n",
		coursesFile: "course_id,skill_name,course_name,provider,duration_hours,modality\n" +
			"C1,Python,Python exprés,Coursera,12,online\n" +
			"C2,SQL,SQL desde cero,Udemy,,online\n",
	}
	for name, content := range overrides {
		files[name] = content
	}

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestCSVSource_LoadTables(t *testing.T) {
	dir := writeFixtures(t, nil)

	tables, err := NewCSVSource(dir).LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	if len(tables.Employees) != 2 {
		t.Errorf("expected 2 employees, got %d", len(tables.Employees))
	}
	if len(tables.RoleRequirements) != 2 {
		t.Errorf("expected 2 requirements, got %d", len(tables.RoleRequirements))
	}
	if len(tables.SkillRecords) != 3 {
		t.Errorf("expected 3 skill records, got %d", len(tables.SkillRecords))
	}
	if len(tables.Courses) != 2 {
		t.Errorf("expected 2 courses, got %d", len(tables.Courses))
	}

	if tables.Employees[0].EmployeeID != "E1" || tables.Employees[0].CurrentRole != "Backend" {
		t.Errorf("unexpected first employee: %+v", tables.Employees[0])
	}
	if got := tables.RoleRequirements[0]; got.RequiredLevel == nil || *got.RequiredLevel != 4 || got.Weight == nil || *got.Weight != 2 {
		t.Errorf("unexpected first requirement: %+v", got)
	}

	// duration_hours vide = indéfinie, pas une erreur
	if tables.Courses[1].DurationHours != nil {
		t.Errorf("expected nil duration for C2, got %v", *tables.Courses[1].DurationHours)
	}
}

func TestCSVSource_MissingFileIsDataLoadError(t *testing.T) {
	dir := writeFixtures(t, nil)
	if err := os.Remove(filepath.Join(dir, coursesFile)); err != nil {
		t.Fatal(err)
	}

	_, err := NewCSVSource(dir).LoadTables()

	var loadErr *DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
	if loadErr.Source != coursesFile {
		t.Errorf("expected source %s, got %s", coursesFile, loadErr.Source)
	}
}

func TestCSVSource_MissingColumnIsSchemaError(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		employeesFile: "employee_id,name,surname\nE1,Lucía,García\n",
	})

	_, err := NewCSVSource(dir).LoadTables()

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Column != "current_role" {
		t.Errorf("expected missing column current_role, got %s", schemaErr.Column)
	}
}

func TestCSVSource_EmptyFileIsDataLoadError(t *testing.T) {
	dir := writeFixtures(t, map[string]string{skillRecordsFile: ""})

	_, err := NewCSVSource(dir).LoadTables()

	var loadErr *DataLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected DataLoadError, got %v", err)
	}
}

func TestCSVSource_NonNumericValueBecomesNil(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		skillRecordsFile: "employee_id,skill_name,skill_level\nE1,Python,avanzado\n",
	})

	tables, err := NewCSVSource(dir).LoadTables()
	if err != nil {
		t.Fatalf("value anomaly must not fail the load: %v", err)
	}
	if tables.SkillRecords[0].SkillLevel != nil {
		t.Errorf("expected nil skill_level for non-numeric value")
	}
}

// Les valeurs non finies acceptées par ParseFloat ("NaN", "Inf") sont des
// anomalies de valeur comme les autres: champ indéfini, jamais propagées
func TestCSVSource_NonFiniteValueBecomesNil(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		requirementsFile: "role,skill_name,required_level,weight\n" +
			"Backend,Python,4,NaN\n" +
			"Backend,SQL,Inf,1\n" +
			"Backend,Docker,-Inf,+Inf\n",
	})

	tables, err := NewCSVSource(dir).LoadTables()
	if err != nil {
		t.Fatalf("value anomaly must not fail the load: %v", err)
	}

	if tables.RoleRequirements[0].Weight != nil {
		t.Errorf("expected nil weight for NaN, got %v", *tables.RoleRequirements[0].Weight)
	}
	if tables.RoleRequirements[1].RequiredLevel != nil {
		t.Errorf("expected nil required_level for Inf")
	}
	if tables.RoleRequirements[2].RequiredLevel != nil || tables.RoleRequirements[2].Weight != nil {
		t.Errorf("expected nil fields for -Inf/+Inf: %+v", tables.RoleRequirements[2])
	}
}

// Un poids NaN dans la source ne doit jamais atteindre le moteur: le champ
// devient indéfini, le poids par défaut (1) s'applique et la sévérité reste
// finie et positive
func TestCSVSource_NaNWeightFallsBackToDefault(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		requirementsFile: "role,skill_name,required_level,weight\n" +
			"Backend,Python,4,NaN\n",
		skillRecordsFile: "employee_id,skill_name,skill_level\n" +
			"E1,Python,2\n",
	})

	tables, err := NewCSVSource(dir).LoadTables()
	if err != nil {
		t.Fatal(err)
	}

	gaps := engine.Compute(tables.Employees, tables.SkillRecords, tables.RoleRequirements)
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gap rows, got %d", len(gaps))
	}
	if gaps[0].Weight != 1 {
		t.Errorf("expected default weight 1, got %v", gaps[0].Weight)
	}
	if gaps[0].Severity != 2 {
		t.Errorf("expected severity 2, got %v", gaps[0].Severity)
	}
	for _, g := range gaps {
		if math.IsNaN(g.Severity) || g.Severity < 0 {
			t.Errorf("severity must stay finite and non-negative, got %v", g.Severity)
		}
	}
}

func TestNullableFloat_NonFinite(t *testing.T) {
	if v := nullableFloat(sql.NullFloat64{Valid: true, Float64: math.NaN()}); v != nil {
		t.Errorf("expected nil for NaN, got %v", *v)
	}
	if v := nullableFloat(sql.NullFloat64{Valid: true, Float64: math.Inf(1)}); v != nil {
		t.Errorf("expected nil for +Inf, got %v", *v)
	}
	if v := nullableFloat(sql.NullFloat64{Valid: true, Float64: 3.5}); v == nil || *v != 3.5 {
		t.Error("expected finite values to pass through")
	}
	if v := nullableFloat(sql.NullFloat64{Valid: false}); v != nil {
		t.Error("expected nil for NULL")
	}
}

func TestCSVSource_ExtraColumnsIgnored(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		employeesFile: "employee_id,name,surname,current_role,office,notes\n" +
			"E1,Lucía,García,Backend,Madrid,top performer\n",
	})

	tables, err := NewCSVSource(dir).LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tables.Employees[0].CurrentRole != "Backend" {
		t.Errorf("unexpected employee: %+v", tables.Employees[0])
	}
}

func TestTables_FingerprintStableAndSensitive(t *testing.T) {
	dir := writeFixtures(t, nil)
	source := NewCSVSource(dir)

	first, err := source.LoadTables()
	if err != nil {
		t.Fatal(err)
	}
	second, err := source.LoadTables()
	if err != nil {
		t.Fatal(err)
	}

	if first.Fingerprint() != second.Fingerprint() {
		t.Error("same snapshot must produce the same fingerprint")
	}

	second.SkillRecords[0].SkillName = "Rust"
	if first.Fingerprint() == second.Fingerprint() {
		t.Error("different snapshots must produce different fingerprints")
	}
}
