package persistence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrijr/flowlight/pkg/api"
)

// MongoEventStore is an EventStore backed by a MongoDB collection with one
// document per event. Events are listed in _id order; driver-generated
// ObjectIDs increase within one process.
type MongoEventStore struct {
	coll *mongo.Collection
}

var _ EventStore = (*MongoEventStore)(nil)

type mongoEventDoc struct {
	InstanceID     string   `bson:"instance_id"`
	At             int64    `bson:"at"`
	Type           string   `bson:"type"`
	DefinitionType string   `bson:"definition_type,omitempty"`
	Transition     string   `bson:"transition,omitempty"`
	FromState      string   `bson:"from_state,omitempty"`
	ToStates       []string `bson:"to_states,omitempty"`
	Detail         string   `bson:"detail,omitempty"`
}

// NewMongoEventStore creates a Mongo-backed event store and ensures its
// index exists. dbName defaults to "flowlight" if empty, collName defaults to
// "transition_events".
func NewMongoEventStore(ctx context.Context, client *mongo.Client, dbName, collName string) (*MongoEventStore, error) {
	if dbName == "" {
		dbName = "flowlight"
	}
	if collName == "" {
		collName = "transition_events"
	}

	coll := client.Database(dbName).Collection(collName)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "instance_id", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	return &MongoEventStore{coll: coll}, nil
}

func (s *MongoEventStore) AppendEvent(ctx context.Context, ev api.TransitionEvent) error {
	if ev.InstanceID == "" {
		return ErrEmptyInstanceID
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	doc := mongoEventDoc{
		InstanceID:     ev.InstanceID,
		At:             ev.At.UnixNano(),
		Type:           string(ev.Type),
		DefinitionType: ev.DefinitionType,
		Transition:     ev.Transition,
		FromState:      string(ev.FromState),
		Detail:         ev.Detail,
	}
	for _, k := range ev.ToStates {
		doc.ToStates = append(doc.ToStates, string(k))
	}

	_, err := s.coll.InsertOne(ctx, doc)
	return err
}

func (s *MongoEventStore) ListEvents(ctx context.Context, instanceID string) ([]api.TransitionEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{"instance_id": instanceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []api.TransitionEvent
	for cur.Next(ctx) {
		var doc mongoEventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}

		ev := api.TransitionEvent{
			InstanceID:     doc.InstanceID,
			At:             time.Unix(0, doc.At),
			Type:           api.EventType(doc.Type),
			DefinitionType: doc.DefinitionType,
			Transition:     doc.Transition,
			FromState:      api.StateKind(doc.FromState),
			Detail:         doc.Detail,
		}
		for _, k := range doc.ToStates {
			ev.ToStates = append(ev.ToStates, api.StateKind(k))
		}
		out = append(out, ev)
	}
	return out, cur.Err()
}
