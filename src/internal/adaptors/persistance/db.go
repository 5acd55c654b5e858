package persistance

import (
	"database/sql"
	"fmt"

	"github.com/aangsquared/Events-Planner/src/internal/config"
	_ "github.com/lib/pq"
)

type Database struct {
	db *sql.DB
}

func NewDatabase(config *config.Config) (*Database, error) {
	dbUrl := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		config.DB_USER, config.DB_PASS, config.DB_HOST, config.DB_PORT, config.DB_NAME, config.DB_SSLMODE)

	openDb, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("Failed to Open Database :%w", err)
	}
	if err := openDb.Ping(); err != nil {
		return nil, fmt.Errorf("Failed to Ping Database :%w", err)
	}

	return &Database{db: openDb}, nil
}

func (d *Database) Close() {
	d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}
