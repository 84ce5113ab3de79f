package mission

import (
	"context"
	"errors"

	"github.com/corail-counting/corail/pkg/cordf"
	"github.com/corail-counting/corail/pkg/database"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrRecordNotFound = errors.New("mission record not found")
	ErrNotOwner       = errors.New("mission record belongs to another agent")
)

// EditableFields is the whole set of business fields an agent may rewrite
// on a persisted record. The store supports no partial patches: every edit
// replaces all of them at once.
type EditableFields struct {
	TrainNumber string
	Route       string
	ConsistType cordf.ConsistType
	Consists    []string

	ArrivalTime  string
	Observations string
}

// RecordStore persists mission records in the missions collection.
type RecordStore struct {
	collection *mongo.Collection
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		collection: database.GetCollection("missions"),
	}
}

func (store *RecordStore) Create(ctx context.Context, record *cordf.MissionRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}

	_, err := store.collection.InsertOne(ctx, record)

	return err
}

// Replace rewrites the editable field set of a record wholesale. Only the
// owning agent may edit; supervisors are read-only.
func (store *RecordStore) Replace(ctx context.Context, id string, agentID string, fields EditableFields) error {
	record, err := store.byID(ctx, id)
	if err != nil {
		return err
	}

	if record.AgentID != agentID {
		return ErrNotOwner
	}

	if err := copier.Copy(record, &fields); err != nil {
		return err
	}

	_, err = store.collection.ReplaceOne(ctx, bson.M{"_id": id}, record)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to replace mission record")
	}

	return err
}

func (store *RecordStore) Delete(ctx context.Context, id string, agentID string) error {
	record, err := store.byID(ctx, id)
	if err != nil {
		return err
	}

	if record.AgentID != agentID {
		return ErrNotOwner
	}

	_, err = store.collection.DeleteOne(ctx, bson.M{"_id": id})

	return err
}

func (store *RecordStore) byID(ctx context.Context, id string) (*cordf.MissionRecord, error) {
	var record *cordf.MissionRecord

	err := store.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ForAgent returns an agent's history, newest first.
func (store *RecordStore) ForAgent(ctx context.Context, agentID string) ([]cordf.MissionRecord, error) {
	return store.find(ctx, bson.M{"agentID": agentID})
}

// All returns every persisted record, newest first. Supervisor read side.
func (store *RecordStore) All(ctx context.Context) ([]cordf.MissionRecord, error) {
	return store.find(ctx, bson.M{})
}

func (store *RecordStore) find(ctx context.Context, filter bson.M) ([]cordf.MissionRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := store.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	records := []cordf.MissionRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	return records, nil
}
