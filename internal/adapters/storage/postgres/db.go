package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Schema de la tabla pets. genotype va en el formato de genetics.Encode;
// phenotype y stats son caché (se recalculan al leer).
const Schema = `
CREATE TABLE IF NOT EXISTS pets (
	id              TEXT PRIMARY KEY,
	owner_user_id   TEXT NOT NULL,
	name            TEXT NOT NULL,
	sex             TEXT NOT NULL,
	stage           TEXT NOT NULL,
	genotype        TEXT NOT NULL,
	phenotype       JSONB NOT NULL DEFAULT '{}'::jsonb,
	stats           JSONB NOT NULL DEFAULT '{}'::jsonb,
	parent1_id      TEXT NULL REFERENCES pets(id),
	parent2_id      TEXT NULL REFERENCES pets(id),
	generation      INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS pets_owner_created_idx ON pets (owner_user_id, created_at);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
