package topics

const (
	// Mensagens do provider aceitas pela ingestão
	FeedMessages = "feed_messages"
)
