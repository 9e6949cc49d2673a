// internal/app/store/reviews/store.go
package reviews

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/omstools/importassist/internal/domain/oms"
)

// Snapshot is the processed result waiting to be reviewed and downloaded.
// Rows are the merged line and line-target records in export order.
type Snapshot struct {
	SessionID string    `bson:"_id"`
	Action    string    `bson:"action"`
	Rows      []oms.Row `bson:"rows"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Store persists review snapshots keyed by wizard session id.
type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

// New creates a review Store whose snapshots expire ttl after creation.
func New(db *mongo.Database, ttl time.Duration) *Store {
	return &Store{c: db.Collection("reviews"), ttl: ttl}
}

// EnsureIndexes creates the TTL index that expires stale snapshots.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("idx_reviews_expiry").
				SetExpireAfterSeconds(0),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Put stores (or replaces) the snapshot for a session.
func (s *Store) Put(ctx context.Context, sessionID, action string, rows []oms.Row) error {
	now := time.Now().UTC()
	doc := Snapshot{
		SessionID: sessionID,
		Action:    action,
		Rows:      rows,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc,
		options.Replace().SetUpsert(true))
	return err
}

// Get retrieves the snapshot for a session, or nil when none exists.
func (s *Store) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	var snap Snapshot
	err := s.c.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Delete removes the snapshot for a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": sessionID})
	return err
}
