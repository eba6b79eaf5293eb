package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	EventsDbName         = "glambook"
	TemplateEventColName = "template_events"
)

const (
	TemplateEventSelected = "selected"
	TemplateEventFallback = "fallback"
)

// TemplateEvent records one template selection or one renderer fallback.
// Fallbacks stay invisible to viewers but the trail makes a corrupted or
// pre-migration template id discoverable.
type TemplateEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID    uuid.UUID          `bson:"owner_id" json:"owner_id" validate:"required"`
	Kind       string             `bson:"kind" json:"kind"`
	TemplateID string             `bson:"template_id" json:"template_id"`
	Requested  string             `bson:"requested,omitempty" json:"requested,omitempty"`
	At         time.Time          `bson:"at" json:"at"`
}

type TemplateEventRepo interface {
	RecordSelection(ctx context.Context, ownerID uuid.UUID, templateID string) error
	RecordFallback(ctx context.Context, ownerID uuid.UUID, requested, resolved string) error
	GetTemplateEvents(ctx context.Context, ownerID uuid.UUID, limit int) ([]*TemplateEvent, error)
}

func (e *TemplateEvent) BeforeCreate() error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	return nil
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	col := mdb.mongodbClient.Database(dbName).Collection(colName)
	return col, nil
}

func (mdb *MongodbRepo) RecordSelection(ctx context.Context, ownerID uuid.UUID, templateID string) error {
	return mdb.insertTemplateEvent(ctx, &TemplateEvent{
		OwnerID:    ownerID,
		Kind:       TemplateEventSelected,
		TemplateID: templateID,
	})
}

func (mdb *MongodbRepo) RecordFallback(ctx context.Context, ownerID uuid.UUID, requested, resolved string) error {
	return mdb.insertTemplateEvent(ctx, &TemplateEvent{
		OwnerID:    ownerID,
		Kind:       TemplateEventFallback,
		TemplateID: resolved,
		Requested:  requested,
	})
}

func (mdb *MongodbRepo) insertTemplateEvent(ctx context.Context, event *TemplateEvent) error {
	col, err := mdb.GetCollection(ctx, EventsDbName, TemplateEventColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	if err := event.BeforeCreate(); err != nil {
		return fmt.Errorf("failed to prepare template event: %v", err)
	}

	_, err = col.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("error inserting template event: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetTemplateEvents(ctx context.Context, ownerID uuid.UUID, limit int) ([]*TemplateEvent, error) {
	col, err := mdb.GetCollection(ctx, EventsDbName, TemplateEventColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if limit <= 0 {
		limit = 50
	}

	filter := bson.M{"owner_id": ownerID}
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding template events: %v", err)
	}
	defer cursor.Close(ctx)

	var events []*TemplateEvent
	for cursor.Next(ctx) {
		var event TemplateEvent
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("error decoding template event: %v", err)
		}
		events = append(events, &event)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return events, nil
}
