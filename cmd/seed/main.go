package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"skillgap/database"

	"github.com/joho/godotenv"
)

func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	// Connexion PostgreSQL
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "skilluser"),
		getEnv("DB_PASSWORD", "skillpass"),
		getEnv("DB_NAME", "skillgapdb"),
		getEnv("DB_SSLMODE", "disable"),
	)

	if err := database.Init(connStr); err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer database.Close()

	fmt.Println("✅ Connexion PostgreSQL établie")

	employees, _ := strconv.Atoi(getEnv("SEED_EMPLOYEES", "200"))

	fmt.Println("🌱 Démarrage du seed de la base de données...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if err := database.SeedDatabase(employees); err != nil {
		log.Fatal("❌ Erreur lors du seed:", err)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("✅ Seed terminé avec succès!")
	fmt.Println()
	fmt.Println("Vous pouvez maintenant démarrer l'application avec:")
	fmt.Println("  DATA_SOURCE=postgres go run main.go")
	fmt.Println()
	fmt.Println("Et tester les endpoints:")
	fmt.Println("  http://localhost:8080/api/v1/gaps")
	fmt.Println("  http://localhost:8080/api/v1/roles/summary")
	fmt.Println("  http://localhost:8080/api/v1/skills/critical?top=10")
	fmt.Println("  http://localhost:8080/api/v1/recommendations")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
