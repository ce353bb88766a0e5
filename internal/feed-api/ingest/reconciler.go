package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-feed-api/internal/feed-api/dto"
)

var (
	// ErrDuplicateMessage indica que a guarda de idempotência disparou:
	// já existe message com esse id ou event com esse event id.
	ErrDuplicateMessage = errors.New("message or event id already ingested")

	// ErrUnknownMarket indica UpdateOdds contra market desconhecido.
	ErrUnknownMarket = errors.New("market does not exist")
)

// Reconciler decide, pra cada mensagem válida do provider, o que criar e o
// que atualizar no store. Recebe o handle de persistência por injeção; não
// existe sessão global. Os callbacks On* alimentam métricas e são opcionais.
type Reconciler struct {
	Store   Store
	Log     *zap.Logger
	BaseURL string

	OnAccepted       func(msgType string)
	OnRejected       func(reason string)
	OnSelectionError func()
}

// NewEvent processa uma mensagem NewEvent dentro de uma única transação.
//
// A guarda de idempotência checa message id e event id; qualquer um presente
// encerra sem escrita alguma. Passando a guarda, a ordem de criação é
// sport → selections → odds → market → event → message. O bloco de
// selections/odds só roda quando o market ainda não existe: odds enviadas
// contra um market pré-existente são ignoradas de propósito.
func (r *Reconciler) NewEvent(ctx context.Context, msg *dto.ProviderMessage) error {
	ev := msg.Event

	tx, err := r.Store.Begin(ctx)
	if err != nil {
		r.reject("internal")
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	msgExists, err := tx.MessageExists(ctx, *msg.ID)
	if err != nil {
		r.reject("internal")
		return fmt.Errorf("probe message: %w", err)
	}
	evExists, err := tx.EventExists(ctx, *ev.ID)
	if err != nil {
		r.reject("internal")
		return fmt.Errorf("probe event: %w", err)
	}
	if msgExists || evExists {
		r.Log.Warn("cannot add the new event: no valid message or event id",
			zap.Int64("message_id", *msg.ID),
			zap.Int64("event_id", *ev.ID),
		)
		r.reject("duplicate")
		return ErrDuplicateMessage
	}

	startTime, err := time.Parse(dto.TimeLayout, *ev.StartTime)
	if err != nil {
		r.reject("internal")
		return fmt.Errorf("parse start time %q: %w", *ev.StartTime, err)
	}

	sportExists, err := tx.SportExists(ctx, *ev.Sport.ID)
	if err != nil {
		r.reject("internal")
		return fmt.Errorf("probe sport: %w", err)
	}
	if !sportExists {
		if err := tx.InsertSport(ctx, Sport{ID: *ev.Sport.ID, Name: *ev.Sport.Name}); err != nil {
			r.reject("internal")
			return fmt.Errorf("insert sport: %w", err)
		}
	}

	// só o primeiro market da mensagem é suportado
	mk := ev.Markets[0]
	marketExists, err := tx.MarketExists(ctx, *mk.ID)
	if err != nil {
		r.reject("internal")
		return fmt.Errorf("probe market: %w", err)
	}
	if marketExists {
		// market pré-existente (ex.: dois eventos no mesmo market):
		// selections e odds da mensagem não são gravadas
		r.Log.Info("market already known, skipping selections and odds",
			zap.Int64("market_id", *mk.ID),
		)
	} else {
		for _, sel := range mk.Selections {
			selExists, err := tx.SelectionExists(ctx, *sel.ID)
			if err != nil {
				r.reject("internal")
				return fmt.Errorf("probe selection: %w", err)
			}
			if !selExists {
				if err := tx.InsertSelection(ctx, Selection{ID: *sel.ID, Name: *sel.Name}); err != nil {
					r.reject("internal")
					return fmt.Errorf("insert selection: %w", err)
				}
			}

			oddExists, err := tx.OddExists(ctx, *mk.ID, *sel.ID)
			if err != nil {
				r.reject("internal")
				return fmt.Errorf("probe odd: %w", err)
			}
			if !oddExists {
				val, err := sel.Odds.Float64()
				if err != nil {
					r.reject("internal")
					return fmt.Errorf("odds value for selection %d: %w", *sel.ID, err)
				}
				odd := Odd{MarketID: *mk.ID, SelectionID: *sel.ID, Odd: val}
				if err := tx.InsertOdd(ctx, odd); err != nil {
					r.reject("internal")
					return fmt.Errorf("insert odd: %w", err)
				}
			}
		}

		if err := tx.InsertMarket(ctx, Market{ID: *mk.ID, Name: *mk.Name, SportID: *ev.Sport.ID}); err != nil {
			r.reject("internal")
			return fmt.Errorf("insert market: %w", err)
		}
	}

	event := Event{
		ID:        *ev.ID,
		URL:       fmt.Sprintf("%s/api/match/%d", r.BaseURL, *ev.ID),
		Name:      *ev.Name,
		StartTime: startTime,
		MarketID:  *mk.ID,
	}
	if err := tx.InsertEvent(ctx, event); err != nil {
		r.reject("internal")
		return fmt.Errorf("insert event: %w", err)
	}

	record := Message{ID: *msg.ID, MessageType: dto.TypeNewEvent, EventID: *ev.ID}
	if err := tx.InsertMessage(ctx, record); err != nil {
		r.reject("internal")
		return fmt.Errorf("insert message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		r.reject("internal")
		return fmt.Errorf("commit: %w", err)
	}

	r.Log.Info("new event ingested",
		zap.Int64("message_id", *msg.ID),
		zap.Int64("event_id", *ev.ID),
		zap.Int64("market_id", *mk.ID),
	)
	r.accept(dto.TypeNewEvent)
	return nil
}

// UpdateOdds atualiza em lote as odds do primeiro market da mensagem.
// Market desconhecido rejeita a operação inteira; a partir daí cada
// selection é tentada de forma independente e falhas individuais não
// derrubam o restante nem o commit.
func (r *Reconciler) UpdateOdds(ctx context.Context, msg *dto.ProviderMessage) error {
	mk := msg.Event.Markets[0]

	tx, err := r.Store.Begin(ctx)
	if err != nil {
		r.reject("internal")
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	marketExists, err := tx.MarketExists(ctx, *mk.ID)
	if err != nil {
		r.reject("internal")
		return fmt.Errorf("probe market: %w", err)
	}
	if !marketExists {
		r.Log.Warn("cannot update odds: no valid market info",
			zap.Int64("market_id", *mk.ID),
		)
		r.reject("unknown_market")
		return ErrUnknownMarket
	}

	for _, sel := range mk.Selections {
		val, err := sel.Odds.Float64()
		if err != nil {
			r.Log.Warn("failed to update an odd",
				zap.Int64("market_id", *mk.ID),
				zap.Int64("selection_id", *sel.ID),
				zap.Error(err),
			)
			r.selectionError()
			continue
		}
		if err := tx.UpdateOdd(ctx, *mk.ID, *sel.ID, val); err != nil {
			r.Log.Warn("failed to update an odd",
				zap.Int64("market_id", *mk.ID),
				zap.Int64("selection_id", *sel.ID),
				zap.Error(err),
			)
			r.selectionError()
			continue
		}
		r.Log.Info("odd updated",
			zap.Int64("market_id", *mk.ID),
			zap.Int64("selection_id", *sel.ID),
			zap.Float64("odd", val),
		)
	}

	if err := tx.Commit(); err != nil {
		r.reject("internal")
		return fmt.Errorf("commit: %w", err)
	}

	r.accept(dto.TypeUpdateOdds)
	return nil
}

func (r *Reconciler) accept(msgType string) {
	if r.OnAccepted != nil {
		r.OnAccepted(msgType)
	}
}

func (r *Reconciler) reject(reason string) {
	if r.OnRejected != nil {
		r.OnRejected(reason)
	}
}

func (r *Reconciler) selectionError() {
	if r.OnSelectionError != nil {
		r.OnSelectionError()
	}
}
