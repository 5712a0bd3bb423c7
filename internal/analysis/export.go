package analysis

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"skillgap/database"
)

// Tables exportables en CSV
const (
	TableGaps            = "gaps"
	TableSummary         = "summary"
	TableCritical        = "critical"
	TableRecommendations = "recommendations"
)

// ExportCSV exécute un run et sérialise la table demandée en CSV. La ligne
// d'en-têtes est toujours écrite, même sans aucune ligne de données: les
// consommateurs en aval reçoivent un schéma fixe.
func (s *Service) ExportCSV(table string) ([]byte, error) {
	result, err := s.Run()
	if err != nil {
		return nil, err
	}

	switch table {
	case TableGaps:
		return gapsCSV(result.Gaps)
	case TableSummary:
		return summaryCSV(result.RoleSummaries)
	case TableCritical:
		return criticalCSV(result.CriticalSkills)
	case TableRecommendations:
		return recommendationsCSV(result.Recommendations)
	default:
		return nil, fmt.Errorf("unknown export table %q", table)
	}
}

func gapsCSV(gaps []database.GapRecord) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 256*1024))
	writer := csv.NewWriter(buffer)

	header := []string{"employee_id", "name", "surname", "role", "skill_name",
		"skill_level", "required_level", "gap", "weight", "severity"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, g := range gaps {
		row := []string{
			g.EmployeeID,
			g.Name,
			g.Surname,
			g.Role,
			strValue(g.SkillName),
			numValue(g.SkillLevel),
			numValue(g.RequiredLevel),
			numValue(g.Gap),
			formatNum(g.Weight),
			formatNum(g.Severity),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func summaryCSV(summaries []database.RoleSummary) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 16*1024))
	writer := csv.NewWriter(buffer)

	header := []string{"role", "employee_count", "percent_with_gap", "avg_severity"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, s := range summaries {
		row := []string{
			s.Role,
			strconv.Itoa(s.EmployeeCount),
			formatNum(s.PercentWithGap),
			formatNum(s.AvgSeverity),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func criticalCSV(ranking []database.SkillCriticality) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 8*1024))
	writer := csv.NewWriter(buffer)

	header := []string{"skill_name", "total_severity"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, c := range ranking {
		if err := writer.Write([]string{c.SkillName, formatNum(c.TotalSeverity)}); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func recommendationsCSV(recommendations []database.TrainingRecommendation) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 64*1024))
	writer := csv.NewWriter(buffer)

	header := []string{"employee_id", "name", "surname", "role", "skill_name",
		"skill_level", "required_level", "gap",
		"course_id", "course_name", "provider", "duration_hours", "modality"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, r := range recommendations {
		row := []string{
			r.EmployeeID,
			r.Name,
			r.Surname,
			r.Role,
			r.SkillName,
			numValue(r.SkillLevel),
			numValue(r.RequiredLevel),
			formatNum(r.Gap),
			strValue(r.CourseID),
			strValue(r.CourseName),
			strValue(r.Provider),
			numValue(r.DurationHours),
			strValue(r.Modality),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// strValue sérialise un texte optionnel ("" = indéfini)
func strValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// numValue sérialise un numérique optionnel ("" = indéfini)
func numValue(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNum(*v)
}

// formatNum sérialise un numérique sans zéros inutiles
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
