package publisher

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	skafka "github.com/radieske/sports-feed-api/internal/shared/kafka"
	"github.com/radieske/sports-feed-api/pkg/contracts/events"
)

// KafkaPublisher republica mensagens aceitas no tópico feed_messages,
// chaveadas por event id pra manter ordem por evento na partição
type KafkaPublisher struct {
	Writer *skafka.Writer
}

func NewKafkaPublisher(w *skafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e events.FeedMessageAccepted) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return skafka.WriteJSON(ctx, p.Writer, strconv.FormatInt(e.EventID, 10), b)
}
