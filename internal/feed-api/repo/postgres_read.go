package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/radieske/sports-feed-api/internal/feed-api/dto"
)

// ErrBadOrdering indica um campo de ordenação fora da whitelist
var ErrBadOrdering = errors.New("unknown ordering field")

// ListFilter são os filtros opcionais da listagem de eventos
type ListFilter struct {
	Sport    string // match exato case-insensitive pelo nome do sport
	Name     string // match exato pelo nome do evento
	Ordering string // id | url | name | startTime (startTime ordena desc)
}

// ReadRepo atende as consultas; só leitura, sem transação
type ReadRepo struct {
	DB *sql.DB
}

// GetMatch retorna o documento aninhado de um evento: evento + sport +
// market + todas as (selection, odd) do market. sql.ErrNoRows quando o id
// não existe.
func (r *ReadRepo) GetMatch(ctx context.Context, id int64) (*dto.MatchDoc, error) {
	const q = `
		SELECT e.id, e.url, e.name, e.start_time,
		       s.id, s.name,
		       m.id, m.name,
		       sel.id, sel.name, o.odd
		FROM event e
		JOIN market m ON m.id = e.market_id
		JOIN sport s ON s.id = m.sport_id
		JOIN odd o ON o.market_id = m.id
		JOIN selection sel ON sel.id = o.selection_id
		WHERE e.id = $1
		ORDER BY sel.id;
	`
	rows, err := r.DB.QueryContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doc *dto.MatchDoc
	for rows.Next() {
		var (
			evID, sportID, marketID, selID int64
			url, evName, sportName         string
			marketName, selName            string
			startTime                      time.Time
			odd                            float64
		)
		if err := rows.Scan(&evID, &url, &evName, &startTime,
			&sportID, &sportName, &marketID, &marketName,
			&selID, &selName, &odd); err != nil {
			return nil, err
		}
		if doc == nil {
			doc = &dto.MatchDoc{
				ID:        evID,
				URL:       url,
				Name:      evName,
				StartTime: startTime.Format(dto.TimeLayout),
				Sport:     dto.SportDoc{ID: sportID, Name: sportName},
				Markets:   []dto.MarketDoc{{ID: marketID, Name: marketName}},
			}
		}
		doc.Markets[0].Selections = append(doc.Markets[0].Selections,
			dto.SelectionDoc{ID: selID, Name: selName, Odds: odd})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, sql.ErrNoRows
	}
	return doc, nil
}

// ListMatches retorna o resumo dos eventos que batem com o filtro
func (r *ReadRepo) ListMatches(ctx context.Context, f ListFilter) ([]dto.MatchSummary, error) {
	q, args, err := buildListQuery(f)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.MatchSummary
	for rows.Next() {
		var (
			m         dto.MatchSummary
			startTime time.Time
		)
		if err := rows.Scan(&m.ID, &m.URL, &m.Name, &startTime); err != nil {
			return nil, err
		}
		m.StartTime = startTime.Format(dto.TimeLayout)
		out = append(out, m)
	}
	return out, rows.Err()
}

// buildListQuery monta a consulta da listagem. A coluna de ordenação passa
// por whitelist; o valor vem do caller e não pode entrar por interpolação.
func buildListQuery(f ListFilter) (string, []any, error) {
	q := `SELECT e.id, e.url, e.name, e.start_time FROM event e`
	var args []any

	if f.Sport != "" {
		args = append(args, f.Sport)
		q += fmt.Sprintf(`
		JOIN market m ON m.id = e.market_id
		JOIN sport s ON s.id = m.sport_id AND lower(s.name) = lower($%d)`, len(args))
	}
	if f.Name != "" {
		args = append(args, f.Name)
		q += fmt.Sprintf(`
		WHERE e.name = $%d`, len(args))
	}
	if f.Ordering != "" {
		col, desc, ok := orderColumn(f.Ordering)
		if !ok {
			return "", nil, ErrBadOrdering
		}
		q += `
		ORDER BY e.` + col
		if desc {
			q += ` DESC`
		}
	}
	return q, args, nil
}

// orderColumn resolve o campo pedido pra coluna real; startTime é o único
// campo que ordena descendente
func orderColumn(field string) (col string, desc bool, ok bool) {
	switch strings.ToLower(field) {
	case "id":
		return "id", false, true
	case "url":
		return "url", false, true
	case "name":
		return "name", false, true
	case "starttime":
		return "start_time", true, true
	default:
		return "", false, false
	}
}
