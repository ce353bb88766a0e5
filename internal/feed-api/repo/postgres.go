package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/radieske/sports-feed-api/internal/feed-api/ingest"
)

// Postgres implementa o handle de persistência da ingestão sobre *sql.DB
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório do feed
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// Begin abre a transação da ingestão. Serializable pra que nenhuma sonda de
// existência intercale com um insert concorrente da mesma entidade.
func (p *Postgres) Begin(ctx context.Context) (ingest.Tx, error) {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx executa sondas e escritas de uma ingestão na mesma transação
type Tx struct{ tx *sql.Tx }

func (t *Tx) exists(ctx context.Context, q string, args ...any) (bool, error) {
	var ok bool
	if err := t.tx.QueryRowContext(ctx, q, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (t *Tx) MessageExists(ctx context.Context, id int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM message WHERE id = $1)`, id)
}

func (t *Tx) EventExists(ctx context.Context, id int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM event WHERE id = $1)`, id)
}

func (t *Tx) SportExists(ctx context.Context, id int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM sport WHERE id = $1)`, id)
}

func (t *Tx) MarketExists(ctx context.Context, id int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM market WHERE id = $1)`, id)
}

func (t *Tx) SelectionExists(ctx context.Context, id int64) (bool, error) {
	return t.exists(ctx, `SELECT EXISTS (SELECT 1 FROM selection WHERE id = $1)`, id)
}

func (t *Tx) OddExists(ctx context.Context, marketID, selectionID int64) (bool, error) {
	return t.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM odd WHERE market_id = $1 AND selection_id = $2)`,
		marketID, selectionID,
	)
}

func (t *Tx) InsertSport(ctx context.Context, s ingest.Sport) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO sport (id, name) VALUES ($1, $2)`, s.ID, s.Name)
	return err
}

func (t *Tx) InsertSelection(ctx context.Context, s ingest.Selection) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO selection (id, name) VALUES ($1, $2)`, s.ID, s.Name)
	return err
}

func (t *Tx) InsertOdd(ctx context.Context, o ingest.Odd) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO odd (market_id, selection_id, odd) VALUES ($1, $2, $3)`,
		o.MarketID, o.SelectionID, o.Odd)
	return err
}

func (t *Tx) InsertMarket(ctx context.Context, m ingest.Market) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO market (id, name, sport_id) VALUES ($1, $2, $3)`,
		m.ID, m.Name, m.SportID)
	return err
}

func (t *Tx) InsertEvent(ctx context.Context, e ingest.Event) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO event (id, url, name, start_time, market_id) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.URL, e.Name, e.StartTime, e.MarketID)
	return err
}

func (t *Tx) InsertMessage(ctx context.Context, m ingest.Message) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO message (id, message_type, event_id) VALUES ($1, $2, $3)`,
		m.ID, m.MessageType, m.EventID)
	return err
}

// UpdateOdd com par inexistente afeta zero linhas e não é erro
func (t *Tx) UpdateOdd(ctx context.Context, marketID, selectionID int64, value float64) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE odd SET odd = $1 WHERE market_id = $2 AND selection_id = $3`,
		value, marketID, selectionID)
	return err
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }
