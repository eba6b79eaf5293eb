package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProfileViewsColName = "profile_views"
)

// ProfileView is one anonymous visit to a public profile page.
type ProfileView struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   string             `bson:"owner_id" json:"owner_id" validate:"required"`
	SessionID string             `bson:"session_id" json:"session_id" validate:"required"`
	IPAddress string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	ViewedAt  time.Time          `bson:"viewed_at" json:"viewed_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"` // TTL index field
}

type ProfileViewStats struct {
	OwnerID     string `json:"owner_id"`
	TotalViews  int64  `json:"total_views"`
	UniqueViews int64  `json:"unique_views"`
	ViewsToday  int64  `json:"views_today"`
}

type ProfileViewsRepo interface {
	TrackProfileView(ctx context.Context, view *ProfileView) error
	GetProfileViewStats(ctx context.Context, ownerID string) (*ProfileViewStats, error)
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates necessary indexes including TTL
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, EventsDbName, ProfileViewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	indexes := []mongo.IndexModel{
		// Views expire at the time written into expires_at (30 days out)
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetExpireAfterSeconds(0).
				SetName("expires_at_ttl"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("owner_id_idx"),
		},
		{
			Keys: bson.D{
				{Key: "owner_id", Value: 1},
				{Key: "viewed_at", Value: -1},
			},
			Options: options.Index().SetName("owner_viewed_at_idx"),
		},
	}

	_, err = col.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("error creating indexes: %v", err)
	}

	return nil
}

// TrackProfileView records a public page visit, rate-limited to one document
// per session per hour so refreshes don't inflate the stats.
func (mdb *MongodbRepo) TrackProfileView(ctx context.Context, view *ProfileView) error {
	col, err := mdb.GetCollection(ctx, EventsDbName, ProfileViewsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	oneHourAgo := time.Now().Add(-1 * time.Hour)
	var recent ProfileView
	err = col.FindOne(ctx, bson.M{
		"owner_id":   view.OwnerID,
		"session_id": view.SessionID,
		"viewed_at":  bson.M{"$gte": oneHourAgo},
	}).Decode(&recent)
	if err == nil {
		// Already counted this session recently
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("error checking recent view: %v", err)
	}

	if view.ID.IsZero() {
		view.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if view.ViewedAt.IsZero() {
		view.ViewedAt = now
	}
	if view.ExpiresAt.IsZero() {
		view.ExpiresAt = now.Add(30 * 24 * time.Hour)
	}

	_, err = col.InsertOne(ctx, view)
	if err != nil {
		return fmt.Errorf("error inserting profile view: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetProfileViewStats(ctx context.Context, ownerID string) (*ProfileViewStats, error) {
	col, err := mdb.GetCollection(ctx, EventsDbName, ProfileViewsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	total, err := col.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("error counting views: %v", err)
	}

	uniqueSessions, err := col.Distinct(ctx, "session_id", bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("error counting unique views: %v", err)
	}

	startOfDay := time.Now().Truncate(24 * time.Hour)
	today, err := col.CountDocuments(ctx, bson.M{
		"owner_id":  ownerID,
		"viewed_at": bson.M{"$gte": startOfDay},
	})
	if err != nil {
		return nil, fmt.Errorf("error counting today's views: %v", err)
	}

	return &ProfileViewStats{
		OwnerID:     ownerID,
		TotalViews:  total,
		UniqueViews: int64(len(uniqueSessions)),
		ViewsToday:  today,
	}, nil
}
