package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type fakeCollection struct {
	doc     bson.M
	findErr error

	matched   int64
	updateErr error
	upsert    bool
	update    any
}

func (f *fakeCollection) UpdateOne(_ context.Context, _ any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error) {
	var o options.UpdateOneOptions
	for _, l := range opts {
		for _, set := range l.List() {
			_ = set(&o)
		}
	}
	f.upsert = o.Upsert != nil && *o.Upsert
	f.update = update
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &mongo.UpdateResult{MatchedCount: f.matched}, nil
}

func (f *fakeCollection) FindOne(context.Context, any, ...options.Lister[options.FindOneOptions]) *mongo.SingleResult {
	if f.findErr != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, f.findErr, nil)
	}
	return mongo.NewSingleResultFromDocument(f.doc, nil, nil)
}

func newTestStore(coll *fakeCollection) (*ProfileStore, *observability.Metrics) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	return newProfileStore(coll, metrics), metrics
}

func TestProfileStore_ReadMissingDocument(t *testing.T) {
	store, metrics := newTestStore(&fakeCollection{findErr: mongo.ErrNoDocuments})

	_, err := store.Read(context.Background(), "uid-1")

	assert.ErrorIs(t, err, models.ErrProfileNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("read", observability.OutcomeNotFound)))
}

func TestProfileStore_ReadFailure(t *testing.T) {
	store, _ := newTestStore(&fakeCollection{findErr: errors.New("connection reset")})

	_, err := store.Read(context.Background(), "uid-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrProfileNotFound)
}

func TestProfileStore_ReadNormalizesDocument(t *testing.T) {
	store, _ := newTestStore(&fakeCollection{doc: bson.M{
		"_id":    "uid-1",
		"name":   "Asha",
		"income": "50000",
		"emi":    int32(2000),
	}})

	p, err := store.Read(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, 50000.0, p.Income)
	assert.Equal(t, 2000.0, p.EMI)
	assert.Zero(t, p.Expenses)
}

func TestProfileStore_UpdateMissingDocument(t *testing.T) {
	coll := &fakeCollection{matched: 0}
	store, metrics := newTestStore(coll)

	err := store.Update(context.Background(), "uid-1", models.ProfileFields{Name: ptr("Asha")})

	assert.ErrorIs(t, err, models.ErrProfileNotFound)
	assert.False(t, coll.upsert)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("update", observability.OutcomeNotFound)))
}

func TestProfileStore_UpdateExistingDocument(t *testing.T) {
	store, _ := newTestStore(&fakeCollection{matched: 1})

	err := store.Update(context.Background(), "uid-1", models.ProfileFields{Name: ptr("Asha")})

	assert.NoError(t, err)
}

func TestProfileStore_CreateOrMergeUpserts(t *testing.T) {
	coll := &fakeCollection{}
	store, _ := newTestStore(coll)

	err := store.CreateOrMerge(context.Background(), "uid-1", models.ProfileFields{Name: ptr("Asha")})

	require.NoError(t, err)
	assert.True(t, coll.upsert)
	update, ok := coll.update.(bson.M)
	require.True(t, ok)
	assert.Contains(t, update, "$setOnInsert")
}

func TestProfileStore_CreateOrMergeFailure(t *testing.T) {
	cause := errors.New("write concern error")
	store, _ := newTestStore(&fakeCollection{updateErr: cause})

	err := store.CreateOrMerge(context.Background(), "uid-1", models.ProfileFields{})

	assert.ErrorIs(t, err, cause)
}
