// Package engine calcule les brèches de compétences (gaps) entre les niveaux
// constatés des employés et les niveaux requis par leur rôle.
//
// Le moteur est une transformation pure, synchrone et déterministe sur des
// jeux d'enregistrements finis en mémoire: aucune I/O, aucun état partagé.
// Les trois consommateurs (résumé par rôle, classement de criticité,
// recommandations) lisent tous le même []GapRecord produit une seule fois.
package engine

import "skillgap/database"

// Compute construit une ligne par (employé, skill enregistrée) en deux
// jointures gauches successives: employé → skill records, puis → exigence du
// rôle sur (current_role, skill_name).
//
// Comportements de jointure, tous couverts par tests:
//   - un employé sans aucune skill enregistrée émet exactement une ligne
//     placeholder (SkillName/SkillLevel nil), visible dans les résumés par
//     rôle mais sans contribution de sévérité;
//   - une skill enregistrée mais non requise par le rôle apparaît avec gap
//     indéfini et sévérité 0;
//   - une skill requise mais jamais enregistrée ne produit aucune ligne.
//     Pas de produit croisé rôle×exigences: les brèches "jamais évaluées"
//     sont invisibles par construction.
func Compute(employees []database.Employee, skillRecords []database.SkillRecord, roleRequirements []database.RoleRequirement) []database.GapRecord {
	recordsByEmployee := make(map[string][]database.SkillRecord, len(employees))
	for _, rec := range skillRecords {
		recordsByEmployee[rec.EmployeeID] = append(recordsByEmployee[rec.EmployeeID], rec)
	}

	// En cas de doublon sur (role, skill_name), la première exigence gagne
	type requirementKey struct {
		role  string
		skill string
	}
	requirements := make(map[requirementKey]database.RoleRequirement, len(roleRequirements))
	for _, req := range roleRequirements {
		key := requirementKey{role: req.Role, skill: req.SkillName}
		if _, exists := requirements[key]; !exists {
			requirements[key] = req
		}
	}

	gaps := make([]database.GapRecord, 0, len(skillRecords))
	for _, emp := range employees {
		records := recordsByEmployee[emp.EmployeeID]
		if len(records) == 0 {
			gaps = append(gaps, buildRow(emp, nil, nil, nil))
			continue
		}

		for _, rec := range records {
			skillName := rec.SkillName
			var req *database.RoleRequirement
			if r, ok := requirements[requirementKey{role: emp.CurrentRole, skill: skillName}]; ok {
				req = &r
			}
			gaps = append(gaps, buildRow(emp, &skillName, rec.SkillLevel, req))
		}
	}

	return gaps
}

// buildRow calcule gap et severity pour une ligne, avec la sémantique "pas de
// contribution" pour les opérandes indéfinis:
//   - gap = required_level − skill_level si les deux sont définis, sinon nil;
//   - weight = 1 si l'exigence n'en fournit pas;
//   - severity = gap×weight si gap défini et > 0, sinon 0 (jamais négative).
func buildRow(emp database.Employee, skillName *string, skillLevel *float64, req *database.RoleRequirement) database.GapRecord {
	row := database.GapRecord{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Surname:    emp.Surname,
		Role:       emp.CurrentRole,
		SkillName:  skillName,
		SkillLevel: skillLevel,
		Weight:     1,
	}

	if req != nil {
		row.RequiredLevel = req.RequiredLevel
		if req.Weight != nil {
			row.Weight = *req.Weight
		}
	}

	if row.RequiredLevel != nil && row.SkillLevel != nil {
		gap := *row.RequiredLevel - *row.SkillLevel
		row.Gap = &gap
		if gap > 0 {
			row.Severity = gap * row.Weight
		}
	}

	return row
}
