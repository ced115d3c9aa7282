package contextRepo

import (
	"context"
	"time"

	"stayline/config"
	"stayline/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoContextRepo implements ContextRepository using MongoDB.
type MongoContextRepo struct {
	coll *mongo.Collection
}

// NewMongoContextRepo creates a new instance of ContextRepository using MongoDB.
// Documents are keyed by _id, so no extra indexes are needed.
func NewMongoContextRepo() ContextRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("user_contexts")
	return &MongoContextRepo{coll: coll}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
