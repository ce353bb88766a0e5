package validator

import (
	"encoding/json"
	"strings"

	"github.com/radieske/sports-feed-api/internal/feed-api/dto"
)

// Validate aplica as checagens estruturais sobre a mensagem já decodificada
// e devolve um veredito. Nunca toca o banco e nunca retorna erro: inválido
// é inválido, quem mapeia isso pra resposta é o handler.
//
// Regras: id/message_type/event presentes; id, name, startTime e sport do
// evento presentes; markets não vazio; o primeiro market com id e name; e
// toda selection desse market com id, name e odds com literal de float.
func Validate(m *dto.ProviderMessage) bool {
	if m == nil || m.ID == nil || m.MessageType == nil || m.Event == nil {
		return false
	}

	ev := m.Event
	if ev.ID == nil || ev.Name == nil || ev.StartTime == nil || ev.Sport == nil {
		return false
	}
	if ev.Sport.ID == nil || ev.Sport.Name == nil {
		return false
	}

	if len(ev.Markets) == 0 {
		return false
	}

	// só o primeiro market é processado, então só ele é validado
	mk := ev.Markets[0]
	if mk.ID == nil || mk.Name == nil {
		return false
	}

	for _, sel := range mk.Selections {
		if sel.ID == nil || sel.Name == nil || sel.Odds == nil {
			return false
		}
		if !isFloatLiteral(*sel.Odds) {
			return false
		}
	}

	return true
}

// isFloatLiteral aceita apenas literais JSON de ponto flutuante: "1.01" ou
// "1e2" valem, "2" (inteiro) não vale. Odds como string nem chegam aqui,
// a decodificação já rejeita.
func isFloatLiteral(n json.Number) bool {
	if !strings.ContainsAny(n.String(), ".eE") {
		return false
	}
	_, err := n.Float64()
	return err == nil
}
