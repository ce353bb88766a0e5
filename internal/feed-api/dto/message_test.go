package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const fullMessage = `{
	"id": 8,
	"message_type": "NewEvent",
	"event": {
		"id": 994839351740,
		"name": "Real Madrid vs Barcelona",
		"startTime": "2026-06-20 10:30:00",
		"sport": {"id": 221, "name": "Football"},
		"markets": [{
			"id": 385086549360973392,
			"name": "Winner",
			"selections": [
				{"id": 8243901714083343527, "name": "Real Madrid", "odds": 1.01},
				{"id": 5737666888266680774, "name": "Barcelona", "odds": 1.01}
			]
		}]
	}
}`

func TestDecodeProviderMessage(t *testing.T) {
	m, err := DecodeProviderMessage(strings.NewReader(fullMessage))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.ID == nil || *m.ID != 8 {
		t.Errorf("id = %v, want 8", m.ID)
	}
	if m.MessageType == nil || *m.MessageType != TypeNewEvent {
		t.Errorf("message_type = %v, want NewEvent", m.MessageType)
	}
	if m.Event == nil || m.Event.Sport == nil || *m.Event.Sport.Name != "Football" {
		t.Fatal("event.sport not decoded")
	}
	if len(m.Event.Markets) != 1 || len(m.Event.Markets[0].Selections) != 2 {
		t.Fatalf("markets/selections not decoded: %+v", m.Event.Markets)
	}
	if got := m.Event.Markets[0].Selections[0].Odds.String(); got != "1.01" {
		t.Errorf("odds literal = %q, want 1.01", got)
	}
}

func TestDecodeProviderMessage_TypeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"string where int", `{"id": "8", "message_type": "NewEvent"}`},
		{"fractional id", `{"id": 8.5, "message_type": "NewEvent"}`},
		{"string odds", `{"id": 8, "event": {"markets": [{"selections": [{"odds": "1.01"}]}]}}`},
		{"object where string", `{"id": 8, "message_type": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProviderMessage(strings.NewReader(tt.body))
			if err == nil {
				t.Fatal("expected decode error")
			}
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				t.Errorf("expected *json.UnmarshalTypeError, got %T: %v", err, err)
			}
		})
	}
}

func TestDecodeProviderMessage_SyntaxError(t *testing.T) {
	_, err := DecodeProviderMessage(strings.NewReader(`{"id": 8,`))
	if err == nil {
		t.Fatal("expected decode error")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		t.Errorf("syntax error must not classify as type error: %v", err)
	}
}
