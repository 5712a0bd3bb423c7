package loader

import (
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"skillgap/database"
	"skillgap/internal/infrastructure"
)

// Noms des quatre fichiers attendus dans le répertoire de données
const (
	employeesFile    = "employees.csv"
	requirementsFile = "role_requirements.csv"
	skillRecordsFile = "skill_records.csv"
	coursesFile      = "courses.csv"
)

// CSVSource charge les quatre tables depuis des fichiers CSV avec ligne
// d'en-têtes. Les colonnes supplémentaires sont ignorées; une colonne
// requise absente lève une SchemaError avant toute jointure.
type CSVSource struct {
	dir string
}

// NewCSVSource crée une source CSV pointant sur un répertoire
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// LoadTables lit les quatre fichiers en parallèle et matérialise le snapshot.
// Chaque tâche ne touche que son propre champ de Tables; l'ordre des lignes
// de chaque fichier est conservé.
func (s *CSVSource) LoadTables() (*Tables, error) {
	tables := &Tables{}

	pool := infrastructure.NewWorkerPool(4)
	pool.Start()

	pool.Submit(func() error { return s.loadEmployees(tables) })
	pool.Submit(func() error { return s.loadRoleRequirements(tables) })
	pool.Submit(func() error { return s.loadSkillRecords(tables) })
	pool.Submit(func() error { return s.loadCourses(tables) })
	pool.Wait()

	if err := pool.FirstError(); err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *CSVSource) loadEmployees(tables *Tables) error {
	emp, err := readTable(filepath.Join(s.dir, employeesFile))
	if err != nil {
		return err
	}
	if err := emp.require(employeesFile, "employee_id", "name", "surname", "current_role"); err != nil {
		return err
	}
	for _, row := range emp.rows {
		tables.Employees = append(tables.Employees, database.Employee{
			EmployeeID:  emp.str(row, "employee_id"),
			Name:        emp.str(row, "name"),
			Surname:     emp.str(row, "surname"),
			CurrentRole: emp.str(row, "current_role"),
		})
	}
	return nil
}

func (s *CSVSource) loadRoleRequirements(tables *Tables) error {
	req, err := readTable(filepath.Join(s.dir, requirementsFile))
	if err != nil {
		return err
	}
	// weight est optionnelle: absente du fichier ou vide, elle vaudra 1 en sortie
	if err := req.require(requirementsFile, "role", "skill_name", "required_level"); err != nil {
		return err
	}
	for _, row := range req.rows {
		tables.RoleRequirements = append(tables.RoleRequirements, database.RoleRequirement{
			Role:          req.str(row, "role"),
			SkillName:     req.str(row, "skill_name"),
			RequiredLevel: req.num(row, "required_level"),
			Weight:        req.num(row, "weight"),
		})
	}
	return nil
}

func (s *CSVSource) loadSkillRecords(tables *Tables) error {
	rec, err := readTable(filepath.Join(s.dir, skillRecordsFile))
	if err != nil {
		return err
	}
	if err := rec.require(skillRecordsFile, "employee_id", "skill_name", "skill_level"); err != nil {
		return err
	}
	for _, row := range rec.rows {
		tables.SkillRecords = append(tables.SkillRecords, database.SkillRecord{
			EmployeeID: rec.str(row, "employee_id"),
			SkillName:  rec.str(row, "skill_name"),
			SkillLevel: rec.num(row, "skill_level"),
		})
	}
	return nil
}

func (s *CSVSource) loadCourses(tables *Tables) error {
	crs, err := readTable(filepath.Join(s.dir, coursesFile))
	if err != nil {
		return err
	}
	// duration_hours est optionnelle: les cours sans durée passent après les autres
	if err := crs.require(coursesFile, "course_id", "skill_name", "course_name", "provider", "modality"); err != nil {
		return err
	}
	for _, row := range crs.rows {
		tables.Courses = append(tables.Courses, database.Course{
			CourseID:      crs.str(row, "course_id"),
			SkillName:     crs.str(row, "skill_name"),
			CourseName:    crs.str(row, "course_name"),
			Provider:      crs.str(row, "provider"),
			DurationHours: crs.num(row, "duration_hours"),
			Modality:      crs.str(row, "modality"),
		})
	}
	return nil
}

// table - contenu d'un CSV indexé par nom de colonne
type table struct {
	index map[string]int
	rows  [][]string
}

// readTable lit un fichier CSV complet (en-têtes + lignes)
func readTable(path string) (*table, error) {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: name, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // lignes de largeur variable tolérées

	records, err := r.ReadAll()
	if err != nil {
		return nil, &DataLoadError{Source: name, Err: err}
	}
	if len(records) == 0 {
		return nil, &DataLoadError{Source: name, Err: errors.New("empty file, header row expected")}
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		col = strings.TrimSpace(col)
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}

	return &table{index: index, rows: records[1:]}, nil
}

// require vérifie la présence des colonnes obligatoires
func (t *table) require(source string, columns ...string) error {
	for _, col := range columns {
		if _, ok := t.index[col]; !ok {
			return &SchemaError{Source: source, Column: col}
		}
	}
	return nil
}

// str retourne la valeur texte d'une colonne ("" si absente de la ligne)
func (t *table) str(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// num coerce la valeur en numérique; vide, non numérique ou non finie = nil,
// jamais une erreur (anomalie de valeur, pas de structure). ParseFloat accepte
// "NaN" et "Inf": les laisser passer propagerait une sévérité NaN.
func (t *table) num(row []string, column string) *float64 {
	raw := t.str(row, column)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
