package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"example.com/exercisetracker/internal/events"
)

// topicCatalog routes each event type to its Kafka topic.
var topicCatalog = map[string]string{
	events.TypeUserRegistered: events.TopicUserEvents,
	events.TypeExerciseLogged: events.TopicExerciseEvents,
}

// insertOutbox records an event row in the caller's transaction so the write
// and its event commit or roll back together. The partition key is the owning
// user id so a user's events stay ordered.
func insertOutbox(ctx context.Context, tx pgx.Tx, aggregateType, aggregateID, eventType, partitionKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	topic, ok := topicCatalog[eventType]
	if !ok {
		return fmt.Errorf("unknown event type: %s", eventType)
	}

	dedupeKey := fmt.Sprintf("%s:%s", aggregateID, eventType)

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`

	_, err = tx.Exec(ctx, stmt, aggregateType, aggregateID, eventType, topic, partitionKey, body, dedupeKey)
	return err
}
