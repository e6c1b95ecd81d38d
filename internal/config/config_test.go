package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":3000", cfg.HTTPAddress)
	require.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	require.Equal(t, 25, cfg.OutboxBatchSize)
	require.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8085")
	t.Setenv("POSTGRES_URL", "postgres://u:p@db:5432/tracker")
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092 ,")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")

	cfg := Load()

	require.Equal(t, ":8085", cfg.HTTPAddress)
	require.Equal(t, "postgres://u:p@db:5432/tracker", cfg.PostgresURL)
	require.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("OUTBOX_POLL_INTERVAL", "soon")

	cfg := Load()

	require.Equal(t, ":3000", cfg.HTTPAddress)
	require.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
}
