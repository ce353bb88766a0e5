package ingest

import "time"

// Linhas persistidas no Postgres. Todos os ids vêm do provider,
// nada aqui é gerado localmente.

type Sport struct {
	ID   int64
	Name string
}

type Selection struct {
	ID   int64
	Name string
}

type Market struct {
	ID      int64
	Name    string
	SportID int64
}

// Odd tem identidade composta (MarketID, SelectionID); o valor é o único
// campo mutável de todo o modelo.
type Odd struct {
	MarketID    int64
	SelectionID int64
	Odd         float64
}

type Event struct {
	ID        int64
	URL       string
	Name      string
	StartTime time.Time
	MarketID  int64
}

// Message é o registro de idempotência de cada NewEvent aceito.
type Message struct {
	ID          int64
	MessageType string
	EventID     int64
}
