package markup

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCollection struct {
	docs   []interface{}
	err    error
	filter interface{}
}

func (f *fakeCollection) Find(_ context.Context, filter interface{}, _ ...*options.FindOptions) (*mongo.Cursor, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}

	return mongo.NewCursorFromDocuments(f.docs, nil, nil)
}

func TestMongoStore_ActiveRules(t *testing.T) {
	oid := primitive.NewObjectID()

	activeRulesRequest := func(coll *fakeCollection, want []Rule, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			got, err := NewMongoStore(coll).ActiveRules(context.Background())
			if (err != nil) != wantErr {
				t.Fatalf("ActiveRules() error = %v, wantErr %v", err, wantErr)
			}
			if wantErr {
				return
			}

			assert.Equal(t, bson.M{"status": "active"}, coll.filter)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("ActiveRules() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("decodes_documents", activeRulesRequest(&fakeCollection{docs: []interface{}{
		bson.D{
			{Key: "_id", Value: oid},
			{Key: "airlines", Value: bson.A{"SV", "EK"}},
			{Key: "origin", Value: "DAC"},
			{Key: "markupType", Value: "percentage"},
			{Key: "markupValue", Value: 5.5},
			{Key: "priority", Value: int32(3)},
			{Key: "status", Value: "active"},
		},
		bson.D{
			{Key: "_id", Value: "flat-all"},
			{Key: "markupType", Value: "flat"},
			{Key: "markupValue", Value: int32(20)},
			{Key: "priority", Value: int32(1)},
			{Key: "status", Value: "active"},
		},
	}}, []Rule{
		{ID: oid.Hex(), Airlines: []string{"SV", "EK"}, Origin: "DAC", MarkupType: TypePercentage,
			MarkupValue: 5.5, Priority: 3, Status: StatusActive},
		{ID: "flat-all", MarkupType: TypeFlat, MarkupValue: 20, Priority: 1, Status: StatusActive},
	}, false))

	t.Run("query_error", activeRulesRequest(&fakeCollection{err: errors.New("connection refused")}, nil, true))
}

func TestStaticStore_ActiveRules(t *testing.T) {
	store := NewStaticStore([]Rule{
		{ID: "a", Status: StatusActive},
		{ID: "b", Status: StatusInactive},
		{ID: "c", Status: StatusActive},
	})

	got, err := store.ActiveRules(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, []string{got[0].ID, got[1].ID})
	assert.Len(t, got, 2)
}
