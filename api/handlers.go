package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"skillgap/internal/analysis"
)

// Handlers expose le service d'analyse sur HTTP. La couche de présentation
// (tableaux, graphiques, filtres) vit ailleurs: ici on ne fait que servir
// les tables dérivées telles quelles.
type Handlers struct {
	service *analysis.Service
}

// NewHandlers crée une nouvelle instance des handlers
func NewHandlers(service *analysis.Service) *Handlers {
	return &Handlers{service: service}
}

// Gaps handler pour GET /api/v1/gaps
func (h *Handlers) Gaps(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	result, err := h.service.Run()
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, result.Gaps)
	fmt.Printf("[API] gaps: %d lignes en %v\n", len(result.Gaps), time.Since(start))
}

// RoleSummaries handler pour GET /api/v1/roles/summary
func (h *Handlers) RoleSummaries(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run()
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, result.RoleSummaries)
}

// CriticalSkills handler pour GET /api/v1/skills/critical?top=N
func (h *Handlers) CriticalSkills(w http.ResponseWriter, r *http.Request) {
	top := 0 // 0 = topN configuré du service
	if raw := r.URL.Query().Get("top"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			top = v
		}
	}

	result, err := h.service.RunTopN(top)
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, result.CriticalSkills)
}

// Recommendations handler pour GET /api/v1/recommendations
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run()
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, result.Recommendations)
}

// ExportCSV handler pour GET /api/v1/export/csv?table=gaps|summary|critical|recommendations
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	table := r.URL.Query().Get("table")
	if table == "" {
		table = analysis.TableGaps
	}

	data, err := h.service.ExportCSV(table)
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", table))
	w.Write(data)

	fmt.Printf("[API] export csv %s: %d octets en %v\n", table, len(data), time.Since(start))
}

// ExportParquet handler pour GET /api/v1/export/parquet
func (h *Handlers) ExportParquet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	data, err := h.service.ExportGapsParquet()
	if err != nil {
		serviceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=gaps.parquet")
	w.Write(data)

	fmt.Printf("[API] export parquet: %d octets en %v\n", len(data), time.Since(start))
}

// InvalidateCache handler pour POST /api/v1/cache/invalidate
func (h *Handlers) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.service.InvalidateCache()
	respondJSON(w, map[string]string{"status": "ok", "message": "cache invalidé"})
}

// respondJSON sérialise la réponse en JSON
func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// serviceError remonte les erreurs fatales (DataLoadError, SchemaError) au
// client. Les anomalies de valeur ne passent jamais par ici: ce sont des
// données valides du résultat.
func serviceError(w http.ResponseWriter, err error) {
	log.Printf("[API] erreur: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
