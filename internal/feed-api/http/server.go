package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/sports-feed-api/internal/feed-api/dto"
	"github.com/radieske/sports-feed-api/internal/feed-api/repo"
	"github.com/radieske/sports-feed-api/internal/feed-api/validator"
	"github.com/radieske/sports-feed-api/pkg/contracts/events"
)

// Respostas em texto puro do endpoint de ingestão e das consultas;
// o provider depende delas ao pé da letra
const (
	respOK          = "OK"
	respCannotParse = "Can not parse the message"
	respInvalidType = "Invalid message type"
	respNoMatch     = "No match with current match id"
	respNoResults   = "No match on current query conditions"
	respQueryFailed = "Cannot complete the query"
)

const matchCacheTTL = 30 * time.Second

type Reconciler interface {
	NewEvent(ctx context.Context, msg *dto.ProviderMessage) error
	UpdateOdds(ctx context.Context, msg *dto.ProviderMessage) error
}

type MatchReader interface {
	GetMatch(ctx context.Context, id int64) (*dto.MatchDoc, error)
	ListMatches(ctx context.Context, f repo.ListFilter) ([]dto.MatchSummary, error)
}

type MatchCache interface {
	Get(ctx context.Context, id int64, dst any) (bool, error)
	Set(ctx context.Context, id int64, v any, ttl time.Duration) error
}

type Publisher interface {
	Publish(ctx context.Context, e events.FeedMessageAccepted) error
}

// Server expõe a ingestão de mensagens do provider e as consultas de match.
// Cache e publisher são opcionais (nil desliga).
type Server struct {
	log    *zap.Logger
	rec    Reconciler
	reader MatchReader
	cache  MatchCache
	publ   Publisher
}

func NewServer(log *zap.Logger, rec Reconciler, reader MatchReader, cache MatchCache, publ Publisher) *Server {
	return &Server{log: log, rec: rec, reader: reader, cache: cache, publ: publ}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/external_providers", s.ingestMessage) // mensagens NewEvent/UpdateOdds
	r.Put("/api/external_providers", s.ingestMessage)  // providers legados usam PUT
	r.Get("/api/match/{id:[0-9]+}", s.getMatch)
	r.Get("/api/match/", s.listMatches)
	return r
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ingestMessage valida e despacha uma mensagem do provider. Rejeições da
// reconciliação (duplicata, market desconhecido, falha interna do store) são
// logadas e o provider ainda recebe "OK": o contrato é sempre reconhecer.
func (s *Server) ingestMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := dto.DecodeProviderMessage(r.Body)
	if err != nil {
		// tipo errado num campo equivale a payload inválido; só erro de
		// sintaxe vira exceção
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeText(w, http.StatusOK, respCannotParse)
			return
		}
		s.log.Error("failed to read ingest body", zap.Error(err))
		writeText(w, http.StatusInternalServerError, fmt.Sprintf("Exception:%s", err))
		return
	}

	if !validator.Validate(msg) {
		writeText(w, http.StatusOK, respCannotParse)
		return
	}

	switch *msg.MessageType {
	case dto.TypeNewEvent:
		if err := s.rec.NewEvent(r.Context(), msg); err != nil {
			s.log.Warn("failed to add the new event",
				zap.Int64("message_id", *msg.ID),
				zap.Error(err),
			)
		} else {
			s.publishAccepted(r, msg)
		}
		writeText(w, http.StatusOK, respOK)

	case dto.TypeUpdateOdds:
		if err := s.rec.UpdateOdds(r.Context(), msg); err != nil {
			s.log.Warn("failed to update odds",
				zap.Int64("message_id", *msg.ID),
				zap.Error(err),
			)
		} else {
			s.publishAccepted(r, msg)
		}
		writeText(w, http.StatusOK, respOK)

	default:
		s.log.Error("invalid message type",
			zap.Int64("message_id", *msg.ID),
			zap.String("message_type", *msg.MessageType),
		)
		writeText(w, http.StatusOK, respInvalidType)
	}
}

func (s *Server) publishAccepted(r *http.Request, msg *dto.ProviderMessage) {
	if s.publ == nil {
		return
	}
	e := events.FeedMessageAccepted{
		MessageID:   *msg.ID,
		MessageType: *msg.MessageType,
		EventID:     *msg.Event.ID,
		MarketID:    *msg.Event.Markets[0].ID,
	}
	if err := s.publ.Publish(r.Context(), e); err != nil {
		s.log.Warn("failed to publish accepted message",
			zap.Int64("message_id", *msg.ID),
			zap.Error(err),
		)
	}
}

// getMatch retorna o documento aninhado de um evento, preferencialmente do
// cache
func (s *Server) getMatch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeText(w, http.StatusOK, respNoMatch)
		return
	}

	if s.cache != nil {
		var fromCache dto.MatchDoc
		if ok, _ := s.cache.Get(r.Context(), id, &fromCache); ok {
			writeJSON(w, http.StatusOK, fromCache)
			return
		}
	}

	doc, err := s.reader.GetMatch(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeText(w, http.StatusOK, respNoMatch)
			return
		}
		s.log.Error("get match failed", zap.Int64("match_id", id), zap.Error(err))
		writeText(w, http.StatusInternalServerError, fmt.Sprintf("Exception:%s", err))
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(r.Context(), id, doc, matchCacheTTL); err != nil {
			s.log.Warn("match cache set failed", zap.Int64("match_id", id), zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, doc)
}

// listMatches filtra por sport e name e ordena pelo campo pedido
func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	f := repo.ListFilter{
		Sport:    r.URL.Query().Get("sport"),
		Name:     r.URL.Query().Get("name"),
		Ordering: r.URL.Query().Get("ordering"),
	}

	matches, err := s.reader.ListMatches(r.Context(), f)
	if err != nil {
		if !errors.Is(err, repo.ErrBadOrdering) {
			s.log.Error("list matches failed", zap.Error(err))
		}
		writeText(w, http.StatusOK, respQueryFailed)
		return
	}
	if len(matches) == 0 {
		writeText(w, http.StatusOK, respNoResults)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
