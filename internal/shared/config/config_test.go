package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServiceName != "feed-api" {
		t.Errorf("ServiceName = %q, want feed-api", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.TopicFeedMessages != "feed_messages" {
		t.Errorf("TopicFeedMessages = %q, want feed_messages", cfg.TopicFeedMessages)
	}
	if cfg.PublicBaseURL == "" {
		t.Error("PublicBaseURL must have a default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("KAFKA_TOPIC_FEED", "feed_custom")
	t.Setenv("PUBLIC_BASE_URL", "https://feeds.example.com")

	cfg := Load()

	if cfg.HTTPPort != "9999" {
		t.Errorf("HTTPPort = %q, want 9999", cfg.HTTPPort)
	}
	if cfg.TopicFeedMessages != "feed_custom" {
		t.Errorf("TopicFeedMessages = %q, want feed_custom", cfg.TopicFeedMessages)
	}
	if cfg.PublicBaseURL != "https://feeds.example.com" {
		t.Errorf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
}
