package engine

import (
	"math"

	"skillgap/database"
)

// Summarize produit un agrégat par rôle distinct présent dans les gaps:
//   - employee_count: employés distincts portant ce rôle;
//   - percent_with_gap: part des employés ayant au moins une ligne avec
//     gap > 0, arrondie à une décimale. Un employé dont toutes les lignes
//     ont un gap indéfini compte comme sans brèche;
//   - avg_severity: moyenne de la sévérité sur TOUTES les lignes du rôle
//     (pas de déduplication par employé). Les lignes à sévérité nulle tirent
//     la moyenne vers le bas: l'agrégat mesure l'exposition typique du rôle,
//     pas celle de l'employé.
//
// Les rôles sortent dans leur ordre de première apparition.
func Summarize(gaps []database.GapRecord) []database.RoleSummary {
	type roleAccumulator struct {
		employees        map[string]struct{}
		employeesWithGap map[string]struct{}
		severitySum      float64
		rowCount         int
	}

	order := make([]string, 0)
	byRole := make(map[string]*roleAccumulator)

	for _, g := range gaps {
		acc := byRole[g.Role]
		if acc == nil {
			acc = &roleAccumulator{
				employees:        make(map[string]struct{}),
				employeesWithGap: make(map[string]struct{}),
			}
			byRole[g.Role] = acc
			order = append(order, g.Role)
		}

		acc.employees[g.EmployeeID] = struct{}{}
		if g.HasGap() {
			acc.employeesWithGap[g.EmployeeID] = struct{}{}
		}
		acc.severitySum += g.Severity
		acc.rowCount++
	}

	summaries := make([]database.RoleSummary, 0, len(order))
	for _, role := range order {
		acc := byRole[role]
		count := len(acc.employees)
		summaries = append(summaries, database.RoleSummary{
			Role:           role,
			EmployeeCount:  count,
			PercentWithGap: round1(100 * float64(len(acc.employeesWithGap)) / float64(count)),
			AvgSeverity:    acc.severitySum / float64(acc.rowCount),
		})
	}

	return summaries
}

// round1 arrondit à une décimale
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
