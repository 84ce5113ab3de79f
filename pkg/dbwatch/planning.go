package dbwatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/database"
	"github.com/corail-counting/corail/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PlanningWatch struct {
	EventQueue rmq.Queue
}

type planningChange struct {
	OperationType string            `bson:"operationType"`
	FullDocument  cordf.PlanningDay `bson:"fullDocument"`
}

func NewPlanningWatch() *PlanningWatch {
	eventQueue, err := redis_client.QueueConnection.OpenQueue("events-queue")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start event queue")
	}

	return &PlanningWatch{
		EventQueue: eventQueue,
	}
}

func (w *PlanningWatch) Run() {
	log.Info().Msg("Starting dbwatch on collection planning")
	collection := database.GetCollection("planning")
	matchPipeline := bson.D{
		{
			Key: "$match", Value: bson.D{
				{
					Key: "operationType", Value: bson.D{
						{Key: "$in", Value: bson.A{"insert", "replace", "update"}},
					},
				},
			},
		},
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := collection.Watch(context.Background(), mongo.Pipeline{matchPipeline}, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to watch collection")
	}

	defer stream.Close(context.Background())

	for stream.Next(context.Background()) {
		var data planningChange

		if err := stream.Decode(&data); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		log.Info().
			Str("agent", data.FullDocument.AgentID).
			Str("date", data.FullDocument.Date).
			Msg("Planning day updated")

		eventBytes, _ := json.Marshal(cordf.Event{
			Type:      cordf.EventTypePlanningDayUpdated,
			Timestamp: time.Now(),
			Body:      data.FullDocument,
		})
		w.EventQueue.PublishBytes(eventBytes)
	}

	log.Error().Err(stream.Err()).Msg("planning watch fell over")

	w.Run()
}
