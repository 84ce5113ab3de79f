package planning

import (
	"context"
	"errors"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store reads and writes PlanningDay documents keyed by {agentID}_{date}.
// Writes are whole-document upserts; there are no partial patches.
type Store struct {
	collection *mongo.Collection
}

func NewStore() *Store {
	return &Store{
		collection: database.GetCollection("planning"),
	}
}

// Day returns the record for an agent and date, or an empty one primed with
// the key fields when nothing is stored yet. A day is only persisted on its
// first edit.
func (store *Store) Day(ctx context.Context, agentID string, date string) (cordf.PlanningDay, error) {
	var day cordf.PlanningDay

	err := store.collection.FindOne(ctx, bson.M{"_id": cordf.PlanningDocumentID(agentID, date)}).Decode(&day)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return cordf.PlanningDay{AgentID: agentID, Date: date}, nil
	}
	if err != nil {
		return cordf.PlanningDay{}, err
	}

	return day, nil
}

// Week returns an agent's records for a span of dates.
func (store *Store) Week(ctx context.Context, agentID string, dates []string) (map[string]cordf.PlanningDay, error) {
	cursor, err := store.collection.Find(ctx, bson.M{
		"agentID": agentID,
		"date":    bson.M{"$in": dates},
	})
	if err != nil {
		return nil, err
	}

	days := map[string]cordf.PlanningDay{}

	for cursor.Next(ctx) {
		var day cordf.PlanningDay
		if err := cursor.Decode(&day); err != nil {
			return nil, err
		}

		days[day.Date] = day
	}

	return days, cursor.Err()
}

// Save upserts the whole document under its {agentID}_{date} key, stamping
// UpdatedAt. Every edit path ends here: read, mutate, save wholesale.
func (store *Store) Save(ctx context.Context, day cordf.PlanningDay) error {
	day = touch(day)

	_, err := store.collection.ReplaceOne(
		ctx,
		bson.M{"_id": cordf.PlanningDocumentID(day.AgentID, day.Date)},
		day,
		options.Replace().SetUpsert(true),
	)

	return err
}
