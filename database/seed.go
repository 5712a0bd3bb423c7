package database

import (
	"fmt"
	"math/rand"
)

// requirementProfile - profil de skills attendu pour un rôle. Un poids nil
// est inséré en NULL: le moteur le ramènera à 1.
type requirementProfile struct {
	skill    string
	required float64
	weight   *float64
}

func w(v float64) *float64 { return &v }

// Profils de rôles de la filière Tech
var roleProfiles = map[string][]requirementProfile{
	"Backend Developer": {
		{"Python", 4, w(2)},
		{"SQL", 3, w(1)},
		{"Docker", 3, w(1.5)},
		{"Git", 3, nil},
	},
	"Frontend Developer": {
		{"JavaScript", 4, w(2)},
		{"TypeScript", 3, w(1.5)},
		{"CSS", 3, w(1)},
		{"Git", 3, nil},
	},
	"Data Engineer": {
		{"Python", 4, w(2)},
		{"SQL", 4, w(2)},
		{"Spark", 3, w(1.5)},
		{"Airflow", 2, w(1)},
	},
	"DevOps Engineer": {
		{"Docker", 4, w(2)},
		{"Kubernetes", 4, w(2)},
		{"Terraform", 3, w(1.5)},
		{"Linux", 4, w(1)},
	},
	"QA Engineer": {
		{"Selenium", 3, w(1.5)},
		{"Python", 2, w(1)},
		{"SQL", 2, w(1)},
	},
}

// Skills hors profil, parfois déclarées par les employés
var extraSkills = []string{"Go", "Rust", "Figma", "Excel", "Kafka"}

var firstNames = []string{
	"Lucía", "Carlos", "María", "Javier", "Ana", "Diego", "Elena", "Pablo",
	"Sofía", "Andrés", "Carmen", "Miguel", "Laura", "Sergio", "Marta", "Iván",
}

var surnames = []string{
	"García", "Martínez", "López", "Sánchez", "Pérez", "Gómez", "Fernández",
	"Díaz", "Torres", "Ruiz", "Moreno", "Jiménez",
}

var providers = []string{"Coursera", "Udemy", "Pluralsight", "LinkedIn Learning", "O'Reilly"}
var modalities = []string{"online", "presencial", "mixto"}

// SeedDatabase peuple les quatre tables d'entrée avec des données de démo.
// Les tables sont vidées avant insertion: chaque seed produit un snapshot
// complet et autonome.
func SeedDatabase(employeeCount int) error {
	fmt.Println("🌱 Nettoyage des tables...")
	_, err := DB.Exec("TRUNCATE employees, role_requirements, skill_records, courses RESTART IDENTITY")
	if err != nil {
		return fmt.Errorf("erreur nettoyage tables: %w", err)
	}

	roles, err := seedRoleRequirements()
	if err != nil {
		return fmt.Errorf("erreur génération exigences: %w", err)
	}

	employees, err := seedEmployees(employeeCount, roles)
	if err != nil {
		return fmt.Errorf("erreur génération employés: %w", err)
	}

	if err := seedSkillRecords(employees); err != nil {
		return fmt.Errorf("erreur génération skill records: %w", err)
	}

	if err := seedCourses(); err != nil {
		return fmt.Errorf("erreur génération formations: %w", err)
	}

	fmt.Println("🔍 Analyse des tables...")
	if _, err := DB.Exec("ANALYZE"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}

	return nil
}

// seedEmployee - paire (employee_id, rôle) utilisée pour générer les records
type seededEmployee struct {
	employeeID string
	role       string
}

// seedRoleRequirements insère les profils de rôles et retourne les rôles
func seedRoleRequirements() ([]string, error) {
	fmt.Println("   📋 Génération des exigences par rôle...")

	roles := make([]string, 0, len(roleProfiles))
	count := 0

	for role, profile := range roleProfiles {
		roles = append(roles, role)
		for _, req := range profile {
			_, err := DB.Exec(`
				INSERT INTO role_requirements (role, skill_name, required_level, weight)
				VALUES ($1, $2, $3, $4)
			`, role, req.skill, req.required, req.weight)
			if err != nil {
				return nil, err
			}
			count++
		}
	}

	fmt.Printf("   ✅ %d exigences créées pour %d rôles\n", count, len(roles))
	return roles, nil
}

// seedEmployees génère les employés et leur assigne un rôle
func seedEmployees(count int, roles []string) ([]seededEmployee, error) {
	fmt.Printf("   👥 Génération de %d employés...\n", count)

	employees := make([]seededEmployee, 0, count)

	for i := 0; i < count; i++ {
		employeeID := fmt.Sprintf("E%04d", i+1)
		role := roles[rand.Intn(len(roles))]

		_, err := DB.Exec(`
			INSERT INTO employees (employee_id, name, surname, current_role)
			VALUES ($1, $2, $3, $4)
		`, employeeID,
			firstNames[rand.Intn(len(firstNames))],
			surnames[rand.Intn(len(surnames))],
			role,
		)
		if err != nil {
			return nil, err
		}

		employees = append(employees, seededEmployee{employeeID: employeeID, role: role})
	}

	fmt.Printf("   ✅ %d employés créés\n", len(employees))
	return employees, nil
}

// seedSkillRecords génère les niveaux constatés. Volontairement lacunaire,
// comme les vraies campagnes d'évaluation:
//   - ~5% des employés n'ont aucun record (ligne placeholder côté moteur);
//   - chaque skill requise a ~80% de chances d'être évaluée;
//   - ~20% des employés déclarent une skill hors profil;
//   - quelques niveaux sont NULL (évaluation non aboutie).
func seedSkillRecords(employees []seededEmployee) error {
	fmt.Println("   📈 Génération des skill records...")

	count := 0
	insert := func(employeeID, skill string, level *float64) error {
		_, err := DB.Exec(`
			INSERT INTO skill_records (employee_id, skill_name, skill_level)
			VALUES ($1, $2, $3)
		`, employeeID, skill, level)
		if err == nil {
			count++
		}
		return err
	}

	for _, emp := range employees {
		if rand.Intn(100) < 5 {
			continue // aucune évaluation pour cet employé
		}

		for _, req := range roleProfiles[emp.role] {
			if rand.Intn(100) >= 80 {
				continue // skill requise jamais évaluée: invisible dans les gaps
			}

			var level *float64
			if rand.Intn(100) >= 3 {
				v := float64(1 + rand.Intn(5))
				level = &v
			}
			if err := insert(emp.employeeID, req.skill, level); err != nil {
				return err
			}
		}

		if rand.Intn(100) < 20 {
			v := float64(1 + rand.Intn(5))
			skill := extraSkills[rand.Intn(len(extraSkills))]
			if err := insert(emp.employeeID, skill, &v); err != nil {
				return err
			}
		}
	}

	fmt.Printf("   ✅ %d skill records créés\n", count)
	return nil
}

// seedCourses génère le catalogue: 1 à 3 formations par skill, durées
// variées, quelques durées NULL pour exercer le départage du recommandeur
func seedCourses() error {
	fmt.Println("   🎓 Génération du catalogue de formations...")

	skills := make(map[string]struct{})
	for _, profile := range roleProfiles {
		for _, req := range profile {
			skills[req.skill] = struct{}{}
		}
	}
	for _, skill := range extraSkills {
		skills[skill] = struct{}{}
	}

	count := 0
	for skill := range skills {
		for i := 0; i < 1+rand.Intn(3); i++ {
			count++

			var duration *float64
			if rand.Intn(100) >= 10 {
				v := float64(8 + rand.Intn(53))
				duration = &v
			}

			_, err := DB.Exec(`
				INSERT INTO courses (course_id, skill_name, course_name, provider, duration_hours, modality)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, fmt.Sprintf("C%04d", count),
				skill,
				fmt.Sprintf("%s - nivel %d", skill, i+1),
				providers[rand.Intn(len(providers))],
				duration,
				modalities[rand.Intn(len(modalities))],
			)
			if err != nil {
				return err
			}
		}
	}

	fmt.Printf("   ✅ %d formations créées\n", count)
	return nil
}
