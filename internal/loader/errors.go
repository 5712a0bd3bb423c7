package loader

import "fmt"

// DataLoadError - un jeu d'enregistrements est inaccessible ou structurellement
// illisible (fichier absent, CSV malformé, requête en échec). Fatal: remonté
// au caller avant tout calcul.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("data load failed for %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// SchemaError - une colonne requise est absente d'un jeu d'enregistrements.
// Fatal, levé avant la logique de jointure, distinct des anomalies de valeur
// (une valeur non numérique devient un champ indéfini, jamais une erreur).
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required column %q is missing", e.Source, e.Column)
}
