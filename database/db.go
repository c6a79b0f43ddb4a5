package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// DB pool partagé vers la base qui héberge le dataset (mode DATA_SOURCE=postgres)
var DB *sql.DB

// Init ouvre le pool de connexions vers la base du dataset
// Le pool est dimensionné large pour le seed (écritures par lots); le chemin
// de lecture de l'application ne fait qu'un chargement complet memoïsé
func Init(connStr string) error {
	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

// Close ferme le pool
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
