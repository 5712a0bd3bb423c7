package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"skillgap/api"
	"skillgap/database"
	"skillgap/internal/analysis"
	"skillgap/internal/infrastructure"
	"skillgap/internal/loader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	source, cleanup, err := buildSource()
	if err != nil {
		log.Fatal("❌ source de données: ", err)
	}
	defer cleanup()

	topN, _ := strconv.Atoi(getEnv("TOP_N", "10"))
	ttlMinutes, _ := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "5"))

	cache := infrastructure.NewShardedCache(16)
	service := analysis.NewService(source, cache, topN, time.Duration(ttlMinutes)*time.Minute)
	handlers := api.NewHandlers(service)

	// Health check
	http.HandleFunc("/api/health", healthHandler)

	// Tables dérivées du run d'analyse
	http.HandleFunc("/api/v1/gaps", handlers.Gaps)
	http.HandleFunc("/api/v1/roles/summary", handlers.RoleSummaries)
	http.HandleFunc("/api/v1/skills/critical", handlers.CriticalSkills)
	http.HandleFunc("/api/v1/recommendations", handlers.Recommendations)

	// Exports
	http.HandleFunc("/api/v1/export/csv", handlers.ExportCSV)
	http.HandleFunc("/api/v1/export/parquet", handlers.ExportParquet)

	// Administration du cache de runs
	http.HandleFunc("/api/v1/cache/invalidate", handlers.InvalidateCache)

	addr := ":" + getEnv("PORT", "8080")
	log.Printf("✅ API skills gap disponible sur %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

// buildSource choisit l'origine du snapshot selon DATA_SOURCE (csv|postgres)
func buildSource() (loader.Source, func(), error) {
	switch kind := getEnv("DATA_SOURCE", "csv"); kind {
	case "csv":
		return loader.NewCSVSource(getEnv("DATA_DIR", "./data")), func() {}, nil

	case "postgres":
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "skilluser"),
			getEnv("DB_PASSWORD", "skillpass"),
			getEnv("DB_NAME", "skillgapdb"),
			getEnv("DB_SSLMODE", "disable"),
		)
		if err := database.Init(connStr); err != nil {
			return nil, nil, err
		}
		return loader.NewPostgresSource(database.DB), func() { database.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("DATA_SOURCE invalide: %q (attendu csv ou postgres)", kind)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"message": "API skills gap disponible",
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
