package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createMissionsIndexes()
	createPlanningIndexes()
}

func createMissionsIndexes() {
	missionsCollection := GetCollection("missions")
	missionsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "agentID", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "route", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := missionsCollection.Indexes().CreateMany(context.Background(), missionsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createPlanningIndexes() {
	planningCollection := GetCollection("planning")
	planningIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "agentID", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "date", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "agentID", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := planningCollection.Indexes().CreateMany(context.Background(), planningIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
