package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/logger"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/observability"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// profileCollection is the part of *mongo.Collection the store uses.
type profileCollection interface {
	UpdateOne(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
}

// ProfileStore keeps one document per user in the users collection, keyed by
// the auth user id.
type ProfileStore struct {
	collection profileCollection
	metrics    *observability.Metrics
	now        func() time.Time
}

func NewProfileStore(db *mongo.Database, metrics *observability.Metrics) *ProfileStore {
	if metrics == nil {
		metrics = observability.Default
	}
	return newProfileStore(db.Collection(ProfileCollection), metrics)
}

func newProfileStore(collection profileCollection, metrics *observability.Metrics) *ProfileStore {
	return &ProfileStore{
		collection: collection,
		metrics:    metrics,
		now:        time.Now,
	}
}

var _ models.ProfileStore = (*ProfileStore)(nil)

// CreateOrMerge upserts the user's document, leaving fields not in fields untouched.
func (s *ProfileStore) CreateOrMerge(ctx context.Context, userID string, fields models.ProfileFields) error {
	update := mergeUpdate(fields, s.now().UTC())
	opts := options.UpdateOne().SetUpsert(true)

	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": userID}, update, opts)
	if err != nil {
		s.metrics.ObserveStore("create_or_merge", observability.OutcomeError)
		logger.Get().Error("failed to save user profile", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("error saving profile: %w", err)
	}

	s.metrics.ObserveStore("create_or_merge", observability.OutcomeSuccess)
	return nil
}

func (s *ProfileStore) Read(ctx context.Context, userID string) (*models.UserProfile, error) {
	var raw bson.M
	err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.metrics.ObserveStore("read", observability.OutcomeNotFound)
			return nil, models.ErrProfileNotFound
		}
		s.metrics.ObserveStore("read", observability.OutcomeError)
		logger.Get().Error("failed to read user profile", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("error reading profile: %w", err)
	}

	profile, err := normalizeProfile(userID, raw)
	if err != nil {
		s.metrics.ObserveStore("read", observability.OutcomeError)
		logger.Get().Warn("stored profile rejected", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.metrics.ObserveStore("read", observability.OutcomeSuccess)
	return profile, nil
}

// Update writes only the given fields and fails when the document does not exist.
func (s *ProfileStore) Update(ctx context.Context, userID string, fields models.ProfileFields) error {
	update := bson.M{"$set": setFields(fields, s.now().UTC())}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		s.metrics.ObserveStore("update", observability.OutcomeError)
		logger.Get().Error("failed to update user profile", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("error updating profile: %w", err)
	}
	if result.MatchedCount == 0 {
		s.metrics.ObserveStore("update", observability.OutcomeNotFound)
		return models.ErrProfileNotFound
	}

	s.metrics.ObserveStore("update", observability.OutcomeSuccess)
	return nil
}

// mergeUpdate builds the upsert document. createdAt and email are only
// written when the document is inserted.
func mergeUpdate(fields models.ProfileFields, now time.Time) bson.M {
	onInsert := bson.M{"createdAt": now}
	if fields.Email != nil {
		onInsert["email"] = *fields.Email
	}
	return bson.M{
		"$set":         setFields(fields, now),
		"$setOnInsert": onInsert,
	}
}

func setFields(fields models.ProfileFields, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Income != nil {
		set["income"] = *fields.Income
	}
	if fields.Expenses != nil {
		set["expenses"] = *fields.Expenses
	}
	if fields.EMI != nil {
		set["emi"] = *fields.EMI
	}
	if fields.ShortTermGoals != nil {
		set["shortTermGoals"] = *fields.ShortTermGoals
	}
	if fields.LongTermGoals != nil {
		set["longTermGoals"] = *fields.LongTermGoals
	}
	return set
}
