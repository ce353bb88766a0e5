package dto

// MatchDoc é o documento aninhado retornado por GET /api/match/{id}
type MatchDoc struct {
	ID        int64       `json:"id"`
	URL       string      `json:"url"`
	Name      string      `json:"name"`
	StartTime string      `json:"startTime"`
	Sport     SportDoc    `json:"sport"`
	Markets   []MarketDoc `json:"markets"`
}

type SportDoc struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MarketDoc struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Selections []SelectionDoc `json:"selections"`
}

type SelectionDoc struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Odds float64 `json:"odds"`
}

// MatchSummary é uma linha da listagem filtrada de eventos
type MatchSummary struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
}
