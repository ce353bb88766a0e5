package ingest

import "context"

// Store é o handle de persistência injetado no Reconciler; cada ingestão
// abre exatamente uma transação.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx reúne as sondas de existência e as escritas de uma ingestão. As sondas
// rodam na mesma transação das escritas pra que nenhuma sonda concorra com
// um insert da própria ingestão.
type Tx interface {
	MessageExists(ctx context.Context, id int64) (bool, error)
	EventExists(ctx context.Context, id int64) (bool, error)
	SportExists(ctx context.Context, id int64) (bool, error)
	MarketExists(ctx context.Context, id int64) (bool, error)
	SelectionExists(ctx context.Context, id int64) (bool, error)
	OddExists(ctx context.Context, marketID, selectionID int64) (bool, error)

	InsertSport(ctx context.Context, s Sport) error
	InsertSelection(ctx context.Context, s Selection) error
	InsertOdd(ctx context.Context, o Odd) error
	InsertMarket(ctx context.Context, m Market) error
	InsertEvent(ctx context.Context, e Event) error
	InsertMessage(ctx context.Context, m Message) error

	// UpdateOdd afeta zero linhas quando o par não existe; isso não é erro.
	UpdateOdd(ctx context.Context, marketID, selectionID int64, value float64) error

	Commit() error
	Rollback() error
}
