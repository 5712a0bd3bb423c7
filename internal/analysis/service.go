// Package analysis orchestre un run complet d'analyse de brèches:
// chargement du snapshot, moteur de calcul, agrégats, exports.
package analysis

import (
	"time"

	"skillgap/database"
	"skillgap/internal/engine"
	"skillgap/internal/infrastructure"
	"skillgap/internal/loader"
)

// DefaultTopN - taille par défaut du classement de criticité
const DefaultTopN = 10

// Result regroupe les quatre sorties dérivées d'un run. Une fois construit,
// le résultat est immuable: il peut être partagé entre requêtes via le cache.
type Result struct {
	Gaps            []database.GapRecord              `json:"gaps"`
	RoleSummaries   []database.RoleSummary            `json:"role_summaries"`
	CriticalSkills  []database.SkillCriticality       `json:"critical_skills"`
	Recommendations []database.TrainingRecommendation `json:"recommendations"`
}

// Service exécute les runs et possède le cache de run complet. Le moteur
// lui-même reste sans état et sans effet de bord: la clé de cache est une
// empreinte du snapshot d'entrée, pas un détail du moteur.
type Service struct {
	source   loader.Source
	cache    infrastructure.Cache
	cacheTTL time.Duration
	topN     int
}

// NewService crée un service d'analyse. topN <= 0 retombe sur DefaultTopN.
func NewService(source loader.Source, cache infrastructure.Cache, topN int, cacheTTL time.Duration) *Service {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Service{
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
		topN:     topN,
	}
}

// Run exécute un run complet avec le topN configuré
func (s *Service) Run() (*Result, error) {
	return s.RunTopN(s.topN)
}

// RunTopN exécute un run complet. Le snapshot est toujours rechargé (un run
// est une recomputation batch sans état); seul le recalcul est évité quand
// l'empreinte du snapshot et le topN correspondent à une entrée de cache.
func (s *Service) RunTopN(topN int) (*Result, error) {
	if topN <= 0 {
		topN = s.topN
	}

	tables, err := s.source.LoadTables()
	if err != nil {
		return nil, err
	}

	key := buildRunKey(tables.Fingerprint(), topN)
	if cached, found := s.cache.Get(key); found {
		return cached.(*Result), nil
	}

	result := computeResult(tables, topN)
	s.cache.Set(key, result, s.cacheTTL)

	return result, nil
}

// InvalidateCache vide le cache de runs
func (s *Service) InvalidateCache() {
	s.cache.Clear()
}

// computeResult fait tourner le moteur une fois, puis les trois
// consommateurs en parallèle: chacun lit le même []GapRecord immuable,
// aucun ordre entre eux n'est requis.
func computeResult(tables *loader.Tables, topN int) *Result {
	result := &Result{}
	result.Gaps = engine.Compute(tables.Employees, tables.SkillRecords, tables.RoleRequirements)

	pool := infrastructure.NewWorkerPool(3)
	pool.Start()

	pool.Submit(func() error {
		result.RoleSummaries = engine.Summarize(result.Gaps)
		return nil
	})
	pool.Submit(func() error {
		result.CriticalSkills = engine.Rank(result.Gaps, topN)
		return nil
	})
	pool.Submit(func() error {
		result.Recommendations = engine.Recommend(result.Gaps, tables.Courses)
		return nil
	})

	pool.Wait()

	return result
}

// buildRunKey construit la clé de cache d'un run
func buildRunKey(fingerprint string, topN int) string {
	return infrastructure.NewCacheKeyBuilder().
		Add("run").
		Add(fingerprint).
		AddInt(topN).
		Build()
}
