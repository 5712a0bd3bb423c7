package database

// ============================================================================
// MODÈLES DE DONNÉES - Jeux d'enregistrements d'entrée
// ============================================================================
//
// Les champs numériques optionnels sont des pointeurs: nil = valeur absente ou
// non numérique dans la source. Une valeur absente n'est jamais une erreur au
// niveau ligne, elle se propage comme champ indéfini dans les sorties.

// Employee - Employé avec son rôle actuel
type Employee struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	CurrentRole string `json:"current_role"`
}

// RoleRequirement - Niveau requis pour une skill dans un rôle
// Clé logique: (role, skill_name). En cas de doublon, la première ligne
// du jeu d'entrée fait foi.
type RoleRequirement struct {
	Role          string   `json:"role"`
	SkillName     string   `json:"skill_name"`
	RequiredLevel *float64 `json:"required_level"`
	Weight        *float64 `json:"weight,omitempty"`
}

// SkillRecord - Niveau effectivement constaté pour un employé
// L'absence d'enregistrement signifie "non évalué", pas "niveau zéro".
type SkillRecord struct {
	EmployeeID string   `json:"employee_id"`
	SkillName  string   `json:"skill_name"`
	SkillLevel *float64 `json:"skill_level"`
}

// Course - Formation du catalogue, rattachée à une skill
type Course struct {
	CourseID      string   `json:"course_id"`
	SkillName     string   `json:"skill_name"`
	CourseName    string   `json:"course_name"`
	Provider      string   `json:"provider"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
	Modality      string   `json:"modality"`
}

// ============================================================================
// MODÈLES DÉRIVÉS - Sorties du moteur (recalculées à chaque run)
// ============================================================================

// GapRecord - Une ligne par (employé, skill enregistrée)
//
// Gap est nil quand l'un des deux niveaux est inconnu. Weight vaut 1 quand
// aucune exigence de rôle n'en fournit un. Severity n'est jamais négative:
// gap*weight si gap défini et > 0, sinon 0.
//
// SkillName/SkillLevel sont nil uniquement sur la ligne placeholder d'un
// employé sans aucune skill enregistrée (visible dans les résumés par rôle,
// zéro contribution de sévérité).
type GapRecord struct {
	EmployeeID    string   `json:"employee_id"`
	Name          string   `json:"name"`
	Surname       string   `json:"surname"`
	Role          string   `json:"role"`
	SkillName     *string  `json:"skill_name"`
	SkillLevel    *float64 `json:"skill_level"`
	RequiredLevel *float64 `json:"required_level"`
	Gap           *float64 `json:"gap"`
	Weight        float64  `json:"weight"`
	Severity      float64  `json:"severity"`
}

// HasGap indique si la ligne porte une brèche effective
func (g GapRecord) HasGap() bool {
	return g.Gap != nil && *g.Gap > 0
}

// RoleSummary - Agrégat par rôle
type RoleSummary struct {
	Role           string  `json:"role"`
	EmployeeCount  int     `json:"employee_count"`
	PercentWithGap float64 `json:"percent_with_gap"`
	AvgSeverity    float64 `json:"avg_severity"`
}

// SkillCriticality - Sévérité totale d'une skill, toutes équipes confondues
type SkillCriticality struct {
	SkillName     string  `json:"skill_name"`
	TotalSeverity float64 `json:"total_severity"`
}

// TrainingRecommendation - Une ligne par brèche effective (gap > 0),
// enrichie de la formation retenue pour la skill. Les champs de cours sont
// nil quand le catalogue ne couvre pas la skill: la ligne n'est pas perdue.
type TrainingRecommendation struct {
	EmployeeID    string   `json:"employee_id"`
	Name          string   `json:"name"`
	Surname       string   `json:"surname"`
	Role          string   `json:"role"`
	SkillName     string   `json:"skill_name"`
	SkillLevel    *float64 `json:"skill_level"`
	RequiredLevel *float64 `json:"required_level"`
	Gap           float64  `json:"gap"`
	CourseID      *string  `json:"course_id"`
	CourseName    *string  `json:"course_name"`
	Provider      *string  `json:"provider"`
	DurationHours *float64 `json:"duration_hours"`
	Modality      *string  `json:"modality"`
}

// ============================================================================
// MODÈLES POUR EXPORT PARQUET
// ============================================================================

// GapParquet - Structure du détail des gaps pour export Parquet
type GapParquet struct {
	EmployeeID    string   `parquet:"name=employee_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Name          string   `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Surname       string   `parquet:"name=surname, type=BYTE_ARRAY, convertedtype=UTF8"`
	Role          string   `parquet:"name=role, type=BYTE_ARRAY, convertedtype=UTF8"`
	SkillName     *string  `parquet:"name=skill_name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	SkillLevel    *float64 `parquet:"name=skill_level, type=DOUBLE, repetitiontype=OPTIONAL"`
	RequiredLevel *float64 `parquet:"name=required_level, type=DOUBLE, repetitiontype=OPTIONAL"`
	Gap           *float64 `parquet:"name=gap, type=DOUBLE, repetitiontype=OPTIONAL"`
	Weight        float64  `parquet:"name=weight, type=DOUBLE"`
	Severity      float64  `parquet:"name=severity, type=DOUBLE"`
}
