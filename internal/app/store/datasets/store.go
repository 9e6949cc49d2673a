// internal/app/store/datasets/store.go
package datasets

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/omstools/importassist/internal/domain/oms"
)

// Dataset is the parsed CSV for one wizard session, already split by
// entity type. Rows carry the originalId tag so later steps can restore
// source ids after renumbering.
type Dataset struct {
	SessionID   string    `bson:"_id"`
	Lines       []oms.Row `bson:"lines"`
	LineTargets []oms.Row `bson:"line_targets"`
	FileName    string    `bson:"file_name,omitempty"`
	UploadedAt  time.Time `bson:"uploaded_at"`
	ExpiresAt   time.Time `bson:"expires_at"`
}

// Store persists uploaded datasets keyed by wizard session id.
type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

// New creates a dataset Store whose documents expire ttl after upload.
func New(db *mongo.Database, ttl time.Duration) *Store {
	return &Store{c: db.Collection("datasets"), ttl: ttl}
}

// EnsureIndexes creates the TTL index that reaps abandoned uploads.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("idx_datasets_expiry").
				SetExpireAfterSeconds(0),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Put stores (or replaces) the dataset for a session.
func (s *Store) Put(ctx context.Context, sessionID, fileName string, lines, targets []oms.Row) error {
	now := time.Now().UTC()
	doc := Dataset{
		SessionID:   sessionID,
		Lines:       lines,
		LineTargets: targets,
		FileName:    fileName,
		UploadedAt:  now,
		ExpiresAt:   now.Add(s.ttl),
	}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": sessionID}, doc,
		options.Replace().SetUpsert(true))
	return err
}

// Get retrieves the dataset for a session, or nil when none exists.
func (s *Store) Get(ctx context.Context, sessionID string) (*Dataset, error) {
	var d Dataset
	err := s.c.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes the dataset for a session. Missing documents are not an
// error; Home resets call this unconditionally.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": sessionID})
	return err
}
