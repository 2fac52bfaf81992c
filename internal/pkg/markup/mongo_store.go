package markup

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCollection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

type ruleDocument struct {
	ID          bson.RawValue `bson:"_id"`
	Airlines    []string      `bson:"airlines"`
	Origin      string        `bson:"origin"`
	MarkupType  string        `bson:"markupType"`
	MarkupValue float64       `bson:"markupValue"`
	Priority    int           `bson:"priority"`
	Status      string        `bson:"status"`
}

// MongoStore reads markup rules from a document collection on every call.
type MongoStore struct {
	collection MongoCollection
}

func NewMongoStore(collection MongoCollection) *MongoStore {
	return &MongoStore{collection: collection}
}

// ActiveRules returns the active rules in creation order.
func (s *MongoStore) ActiveRules(ctx context.Context) ([]Rule, error) {
	cursor, err := s.collection.Find(ctx,
		bson.M{"status": string(StatusActive)},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query markup rules: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []ruleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode markup rules: %w", err)
	}

	rules := make([]Rule, len(docs))
	for i, doc := range docs {
		rules[i] = Rule{
			ID:          documentID(doc.ID),
			Airlines:    doc.Airlines,
			Origin:      doc.Origin,
			MarkupType:  Type(doc.MarkupType),
			MarkupValue: doc.MarkupValue,
			Priority:    doc.Priority,
			Status:      Status(doc.Status),
		}
	}

	return rules, nil
}

func documentID(raw bson.RawValue) string {
	if oid, ok := raw.ObjectIDOK(); ok {
		return oid.Hex()
	}

	if s, ok := raw.StringValueOK(); ok {
		return s
	}

	return raw.String()
}
