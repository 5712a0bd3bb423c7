package loader

import (
	"hash/fnv"
	"strconv"

	"skillgap/database"
)

// Tables regroupe les quatre jeux d'enregistrements immuables d'un run.
// L'ordre des lignes est celui de la source: il porte les règles de
// départage déterministes (première exigence en cas de doublon, premier
// cours du catalogue en cas d'égalité de durée).
type Tables struct {
	Employees        []database.Employee
	RoleRequirements []database.RoleRequirement
	SkillRecords     []database.SkillRecord
	Courses          []database.Course
}

// Source abstrait l'origine des quatre tables
type Source interface {
	LoadTables() (*Tables, error)
}

// Fingerprint calcule une empreinte FNV-64a du snapshot, utilisée comme clé
// de cache du run complet. Deux snapshots identiques (mêmes lignes, même
// ordre) produisent la même empreinte.
func (t *Tables) Fingerprint() string {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
	}

	for _, e := range t.Employees {
		write("emp", e.EmployeeID, e.Name, e.Surname, e.CurrentRole)
	}
	for _, r := range t.RoleRequirements {
		write("req", r.Role, r.SkillName, numKey(r.RequiredLevel), numKey(r.Weight))
	}
	for _, s := range t.SkillRecords {
		write("rec", s.EmployeeID, s.SkillName, numKey(s.SkillLevel))
	}
	for _, c := range t.Courses {
		write("course", c.CourseID, c.SkillName, c.CourseName, c.Provider, numKey(c.DurationHours), c.Modality)
	}

	return strconv.FormatUint(h.Sum64(), 16)
}

// numKey sérialise un numérique optionnel ("" = indéfini)
func numKey(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
