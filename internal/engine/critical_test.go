package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"skillgap/database"
)

func TestRank_ReferenceDataset(t *testing.T) {
	employees, records, requirements := backendFixture()
	gaps := Compute(employees, records, requirements)

	ranking := Rank(gaps, 1)
	require.Len(t, ranking, 1)
	require.Equal(t, "Python", ranking[0].SkillName)
	require.Equal(t, 4.0, ranking[0].TotalSeverity)
}

// Cohérence aller-retour: les totaux du classement doivent être exactement
// les sommes de sévérité par skill des lignes du moteur
func TestRank_RoundTripConsistency(t *testing.T) {
	employees, records, requirements := backendFixture()
	employees = append(employees, database.Employee{EmployeeID: "E3", CurrentRole: "Backend"})
	records = append(records,
		database.SkillRecord{EmployeeID: "E3", SkillName: "Python", SkillLevel: fp(1)},
		database.SkillRecord{EmployeeID: "E3", SkillName: "SQL", SkillLevel: fp(1)},
	)
	gaps := Compute(employees, records, requirements)

	expected := make(map[string]float64)
	for _, g := range gaps {
		if g.SkillName != nil {
			expected[*g.SkillName] += g.Severity
		}
	}

	ranking := Rank(gaps, 0)
	require.Len(t, ranking, len(expected))
	for _, c := range ranking {
		require.InDelta(t, expected[c.SkillName], c.TotalSeverity, 1e-9)
	}
}

func TestRank_DescendingWithStableTies(t *testing.T) {
	python, sql, docker := "Python", "SQL", "Docker"
	gap := 1.0
	gaps := []database.GapRecord{
		{EmployeeID: "E1", Role: "Backend", SkillName: &sql, Gap: &gap, Weight: 2, Severity: 2},
		{EmployeeID: "E1", Role: "Backend", SkillName: &python, Gap: &gap, Weight: 2, Severity: 2},
		{EmployeeID: "E1", Role: "Backend", SkillName: &docker, Gap: &gap, Weight: 5, Severity: 5},
	}

	ranking := Rank(gaps, 10)
	require.Equal(t, "Docker", ranking[0].SkillName)
	// Égalité SQL/Python: l'ordre de première apparition est conservé
	require.Equal(t, "SQL", ranking[1].SkillName)
	require.Equal(t, "Python", ranking[2].SkillName)
}

func TestRank_Truncation(t *testing.T) {
	employees, records, requirements := backendFixture()
	gaps := Compute(employees, records, requirements)

	require.Len(t, Rank(gaps, 1), 1)
	require.Len(t, Rank(gaps, 10), 2) // moins de skills que topN
	require.Len(t, Rank(gaps, 0), 2)  // 0 = pas de troncature
}

func TestRank_PlaceholderRowsIgnored(t *testing.T) {
	gaps := []database.GapRecord{
		{EmployeeID: "E1", Role: "QA", Weight: 1}, // skill indéfinie
	}
	require.Empty(t, Rank(gaps, 10))
}
