package engine

import (
	"sort"

	"skillgap/database"
)

// Recommend attache une formation à chaque brèche effective (gap > 0).
//
// Choix du cours par skill: le plus court en duration_hours; les cours sans
// durée passent après tous les cours chiffrés; à durée égale, le premier du
// catalogue gagne; si aucun cours de la skill n'a de durée, le premier du
// catalogue est retenu. Les skills sans cours gardent leur ligne avec champs
// de cours nil. Résultat trié par (employee_id, skill_name) croissant; vide
// mais jamais nil quand aucune brèche n'existe, pour garder un schéma fixe.
func Recommend(gaps []database.GapRecord, courses []database.Course) []database.TrainingRecommendation {
	bestCourse := make(map[string]database.Course, len(courses))
	for _, c := range courses {
		current, ok := bestCourse[c.SkillName]
		if !ok {
			bestCourse[c.SkillName] = c
			continue
		}
		if c.DurationHours != nil && (current.DurationHours == nil || *c.DurationHours < *current.DurationHours) {
			bestCourse[c.SkillName] = c
		}
	}

	recommendations := make([]database.TrainingRecommendation, 0)
	for _, g := range gaps {
		if !g.HasGap() {
			continue
		}

		// gap > 0 implique une exigence résolue, donc une skill définie
		rec := database.TrainingRecommendation{
			EmployeeID:    g.EmployeeID,
			Name:          g.Name,
			Surname:       g.Surname,
			Role:          g.Role,
			SkillName:     *g.SkillName,
			SkillLevel:    g.SkillLevel,
			RequiredLevel: g.RequiredLevel,
			Gap:           *g.Gap,
		}

		if course, ok := bestCourse[rec.SkillName]; ok {
			rec.CourseID = &course.CourseID
			rec.CourseName = &course.CourseName
			rec.Provider = &course.Provider
			rec.DurationHours = course.DurationHours
			rec.Modality = &course.Modality
		}

		recommendations = append(recommendations, rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if recommendations[i].EmployeeID != recommendations[j].EmployeeID {
			return recommendations[i].EmployeeID < recommendations[j].EmployeeID
		}
		return recommendations[i].SkillName < recommendations[j].SkillName
	})

	return recommendations
}
