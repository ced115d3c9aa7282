package contextRepo

import (
	"errors"
	"fmt"
	"time"

	"stayline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindByID retrieves a user context document. A missing document is not an
// error: callers start new callers from an empty default.
func (r *MongoContextRepo) FindByID(id string) (*models.UserContext, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc models.UserContext
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find context for %s: %w", id, err)
	}
	return &doc, nil
}

// UpsertFields writes only the given dotted-path fields with $set, creating
// the document when absent. Unrelated durable fields are preserved.
func (r *MongoContextRepo) UpsertFields(id string, fields map[string]any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for path, value := range fields {
		set[path] = value
	}

	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert context fields for %s: %w", id, err)
	}
	return nil
}

// AppendCallSummary pushes one call record onto the call history.
func (r *MongoContextRepo) AppendCallSummary(id string, summary models.CallSummary) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"callHistory": summary}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to append call summary for %s: %w", id, err)
	}
	return nil
}
