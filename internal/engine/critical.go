package engine

import (
	"sort"

	"skillgap/database"
)

// Rank classe les skills par sévérité totale décroissante et tronque aux
// topN premières. Le tri est stable: à sévérité égale, l'ordre de première
// apparition dans les gaps est conservé. Les lignes placeholder (skill
// indéfinie) ne forment pas de groupe. Aucune sévérité n'étant négative,
// aucun filtrage par signe n'est nécessaire.
//
// topN <= 0 signifie "pas de troncature" (le défaut est appliqué en amont
// par le service).
func Rank(gaps []database.GapRecord, topN int) []database.SkillCriticality {
	order := make([]string, 0)
	totals := make(map[string]float64)

	for _, g := range gaps {
		if g.SkillName == nil {
			continue
		}
		name := *g.SkillName
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += g.Severity
	}

	ranking := make([]database.SkillCriticality, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, database.SkillCriticality{
			SkillName:     name,
			TotalSeverity: totals[name],
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalSeverity > ranking[j].TotalSeverity
	})

	if topN > 0 && len(ranking) > topN {
		ranking = ranking[:topN]
	}

	return ranking
}
