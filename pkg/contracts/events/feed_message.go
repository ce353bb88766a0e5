package events

// Evento publicado no tópico "feed_messages" após uma ingestão aceita
type FeedMessageAccepted struct {
	MessageID   int64  `json:"message_id"`
	MessageType string `json:"message_type"` // "NewEvent" | "UpdateOdds"
	EventID     int64  `json:"event_id"`
	MarketID    int64  `json:"market_id"`
	TsUnixMs    int64  `json:"ts_unix_ms"`
}
