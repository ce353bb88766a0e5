package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func ConnectPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// schema do feed: seis tabelas, ids sempre atribuídos pelo provider
// (sem sequences). odd tem chave composta (market_id, selection_id).
const schema = `
CREATE TABLE IF NOT EXISTS sport (
	id   BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS selection (
	id   BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS market (
	id       BIGINT PRIMARY KEY,
	name     VARCHAR(255) NOT NULL,
	sport_id BIGINT NOT NULL REFERENCES sport (id)
);

-- as FKs de odd são checadas no commit: a ingestão grava as odds antes do
-- market dentro da mesma transação
CREATE TABLE IF NOT EXISTS odd (
	market_id    BIGINT NOT NULL REFERENCES market (id) DEFERRABLE INITIALLY DEFERRED,
	selection_id BIGINT NOT NULL REFERENCES selection (id) DEFERRABLE INITIALLY DEFERRED,
	odd          DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (market_id, selection_id)
);

CREATE TABLE IF NOT EXISTS event (
	id         BIGINT PRIMARY KEY,
	url        VARCHAR(255) NOT NULL,
	name       VARCHAR(255) NOT NULL,
	start_time TIMESTAMP NOT NULL,
	market_id  BIGINT NOT NULL REFERENCES market (id)
);

CREATE TABLE IF NOT EXISTS message (
	id           BIGINT PRIMARY KEY,
	message_type VARCHAR(255) NOT NULL,
	event_id     BIGINT NOT NULL REFERENCES event (id)
);
`

// Migrate cria o schema na subida do serviço; idempotente
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
