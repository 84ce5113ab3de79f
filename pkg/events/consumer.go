package events

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/stats"
	"github.com/rs/zerolog/log"
)

type EventsBatchConsumer struct {
}

func NewEventsBatchConsumer() *EventsBatchConsumer {
	return &EventsBatchConsumer{}
}

func (c *EventsBatchConsumer) Consume(batch rmq.Deliveries) {
	payloads := batch.Payloads()

	invalidateStats := false

	for _, payload := range payloads {
		var event cordf.Event
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		switch event.Type {
		case cordf.EventTypeMissionRecordCreated, cordf.EventTypeMissionRecordDeleted:
			// Route aggregates are stale once a record changes
			invalidateStats = true

			log.Info().Str("type", string(event.Type)).Msg("Mission record event")
		case cordf.EventTypePlanningDayUpdated:
			log.Info().Str("type", string(event.Type)).Msg("Planning day refreshed")
		default:
			log.Info().Str("type", string(event.Type)).Msg("Unhandled event")
		}
	}

	if invalidateStats {
		stats.InvalidateOverview(context.Background())
	}

	if ackErrors := batch.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Fatal().Err(err).Msg("Failed to consume event")
		}
	}
}
