package dto

import (
	"encoding/json"
	"io"
)

// Tipos de mensagem reconhecidos pela ingestão
const (
	TypeNewEvent   = "NewEvent"
	TypeUpdateOdds = "UpdateOdds"
)

// TimeLayout é o formato textual de startTime no feed do provider
const TimeLayout = "2006-01-02 15:04:05"

// ProviderMessage é o payload de ingestão já tipado. Campos são ponteiros
// pra distinguir ausência de valor zero; odds fica como json.Number porque
// o literal importa (inteiro ou string não valem como odd).
type ProviderMessage struct {
	ID          *int64        `json:"id"`
	MessageType *string       `json:"message_type"`
	Event       *EventPayload `json:"event"`
}

type EventPayload struct {
	ID        *int64          `json:"id"`
	Name      *string         `json:"name"`
	StartTime *string         `json:"startTime"`
	Sport     *SportPayload   `json:"sport"`
	Markets   []MarketPayload `json:"markets"`
}

type SportPayload struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type MarketPayload struct {
	ID         *int64             `json:"id"`
	Name       *string            `json:"name"`
	Selections []SelectionPayload `json:"selections"`
}

type SelectionPayload struct {
	ID   *int64       `json:"id"`
	Name *string      `json:"name"`
	Odds *json.Number `json:"odds"`
}

// DecodeProviderMessage decodifica o corpo da requisição de ingestão.
// Erros de tipo (*json.UnmarshalTypeError) equivalem a payload inválido;
// erros de sintaxe sobem como erro interno no handler.
func DecodeProviderMessage(r io.Reader) (*ProviderMessage, error) {
	var m ProviderMessage
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
