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

type MissionsWatch struct {
	EventQueue rmq.Queue
}

type missionChange struct {
	OperationType            string              `bson:"operationType"`
	FullDocument             cordf.MissionRecord `bson:"fullDocument"`
	FullDocumentBeforeChange cordf.MissionRecord `bson:"fullDocumentBeforeChange"`
}

func NewMissionsWatch() *MissionsWatch {
	eventQueue, err := redis_client.QueueConnection.OpenQueue("events-queue")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start event queue")
	}

	return &MissionsWatch{
		EventQueue: eventQueue,
	}
}

func (w *MissionsWatch) Run() {
	log.Info().Msg("Starting dbwatch on collection missions")
	collection := database.GetCollection("missions")
	matchPipeline := bson.D{
		{
			Key: "$match", Value: bson.D{
				{
					Key: "operationType", Value: bson.D{
						{Key: "$in", Value: bson.A{"insert", "delete", "replace"}},
					},
				},
			},
		},
	}

	opts := options.ChangeStream().SetFullDocumentBeforeChange(options.WhenAvailable).SetFullDocument(options.WhenAvailable)
	stream, err := collection.Watch(context.Background(), mongo.Pipeline{matchPipeline}, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to watch collection")
	}

	defer stream.Close(context.Background())

	for stream.Next(context.Background()) {
		var data missionChange

		if err := stream.Decode(&data); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		switch data.OperationType {
		case "insert":
			log.Info().
				Str("id", data.FullDocument.ID).
				Str("train", data.FullDocument.TrainNumber).
				Msg("New mission record inserted")

			eventBytes, _ := json.Marshal(cordf.Event{
				Type:      cordf.EventTypeMissionRecordCreated,
				Timestamp: time.Now(),
				Body:      data.FullDocument,
			})
			w.EventQueue.PublishBytes(eventBytes)
		case "delete":
			log.Info().
				Str("id", data.FullDocumentBeforeChange.ID).
				Str("train", data.FullDocumentBeforeChange.TrainNumber).
				Msg("Mission record deleted")

			eventBytes, _ := json.Marshal(cordf.Event{
				Type:      cordf.EventTypeMissionRecordDeleted,
				Timestamp: time.Now(),
				Body:      data.FullDocumentBeforeChange,
			})
			w.EventQueue.PublishBytes(eventBytes)
		case "replace":
			// Supervisor edits also change the route aggregates
			eventBytes, _ := json.Marshal(cordf.Event{
				Type:      cordf.EventTypeMissionRecordCreated,
				Timestamp: time.Now(),
				Body:      data.FullDocument,
			})
			w.EventQueue.PublishBytes(eventBytes)
		}
	}

	log.Error().Err(stream.Err()).Msg("missions watch fell over")

	w.Run() // TODO this is a hack and a half
}
