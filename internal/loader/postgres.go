package loader

import (
	"database/sql"
	"math"

	"skillgap/database"
	"skillgap/internal/infrastructure"
)

// PostgresSource charge les quatre tables depuis PostgreSQL. Les lignes sont
// lues dans l'ordre d'insertion (id croissant) pour conserver les règles de
// départage basées sur l'ordre d'entrée.
type PostgresSource struct {
	infrastructure.BaseRepository
}

// NewPostgresSource crée une source branchée sur un pool de connexions
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// LoadTables matérialise le snapshot depuis les quatre tables
func (s *PostgresSource) LoadTables() (*Tables, error) {
	tables := &Tables{}

	if err := s.loadEmployees(tables); err != nil {
		return nil, err
	}
	if err := s.loadRoleRequirements(tables); err != nil {
		return nil, err
	}
	if err := s.loadSkillRecords(tables); err != nil {
		return nil, err
	}
	if err := s.loadCourses(tables); err != nil {
		return nil, err
	}

	return tables, nil
}

func (s *PostgresSource) loadEmployees(tables *Tables) error {
	rows, err := s.Query(`
		SELECT employee_id, name, surname, current_role
		FROM employees
		ORDER BY id
	`)
	if err != nil {
		return &DataLoadError{Source: "employees", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var e database.Employee
		if err := rows.Scan(&e.EmployeeID, &e.Name, &e.Surname, &e.CurrentRole); err != nil {
			return &DataLoadError{Source: "employees", Err: err}
		}
		tables.Employees = append(tables.Employees, e)
	}
	if err := rows.Err(); err != nil {
		return &DataLoadError{Source: "employees", Err: err}
	}
	return nil
}

func (s *PostgresSource) loadRoleRequirements(tables *Tables) error {
	rows, err := s.Query(`
		SELECT role, skill_name, required_level, weight
		FROM role_requirements
		ORDER BY id
	`)
	if err != nil {
		return &DataLoadError{Source: "role_requirements", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var r database.RoleRequirement
		var required, weight sql.NullFloat64
		if err := rows.Scan(&r.Role, &r.SkillName, &required, &weight); err != nil {
			return &DataLoadError{Source: "role_requirements", Err: err}
		}
		r.RequiredLevel = nullableFloat(required)
		r.Weight = nullableFloat(weight)
		tables.RoleRequirements = append(tables.RoleRequirements, r)
	}
	if err := rows.Err(); err != nil {
		return &DataLoadError{Source: "role_requirements", Err: err}
	}
	return nil
}

func (s *PostgresSource) loadSkillRecords(tables *Tables) error {
	rows, err := s.Query(`
		SELECT employee_id, skill_name, skill_level
		FROM skill_records
		ORDER BY id
	`)
	if err != nil {
		return &DataLoadError{Source: "skill_records", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var r database.SkillRecord
		var level sql.NullFloat64
		if err := rows.Scan(&r.EmployeeID, &r.SkillName, &level); err != nil {
			return &DataLoadError{Source: "skill_records", Err: err}
		}
		r.SkillLevel = nullableFloat(level)
		tables.SkillRecords = append(tables.SkillRecords, r)
	}
	if err := rows.Err(); err != nil {
		return &DataLoadError{Source: "skill_records", Err: err}
	}
	return nil
}

func (s *PostgresSource) loadCourses(tables *Tables) error {
	rows, err := s.Query(`
		SELECT course_id, skill_name, course_name, provider, duration_hours, modality
		FROM courses
		ORDER BY id
	`)
	if err != nil {
		return &DataLoadError{Source: "courses", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var c database.Course
		var duration sql.NullFloat64
		if err := rows.Scan(&c.CourseID, &c.SkillName, &c.CourseName, &c.Provider, &duration, &c.Modality); err != nil {
			return &DataLoadError{Source: "courses", Err: err}
		}
		c.DurationHours = nullableFloat(duration)
		tables.Courses = append(tables.Courses, c)
	}
	if err := rows.Err(); err != nil {
		return &DataLoadError{Source: "courses", Err: err}
	}
	return nil
}

// nullableFloat convertit un NullFloat64 en pointeur. NULL et les valeurs
// non finies ('NaN'::float8 est une valeur Postgres légale) donnent nil.
func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid || math.IsNaN(v.Float64) || math.IsInf(v.Float64, 0) {
		return nil
	}
	f := v.Float64
	return &f
}
