package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB est le pool Postgres partagé par la source de snapshot et le seed.
// Le moteur ne le voit jamais: il ne consomme que des tables en mémoire.
var DB *sql.DB

// Init ouvre le pool et vérifie la connexion. La charge est un batch de
// quatre SELECT séquentiels par run: peu de connexions suffisent.
func Init(connStr string) error {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("ouverture du pool postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connexion postgres: %w", err)
	}

	DB = db
	return nil
}

// Close ferme le pool partagé
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
