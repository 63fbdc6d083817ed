package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo collection names
const (
	mediasCollection       = "medias"
	postsCollection        = "posts"
	publicationsCollection = "publications"
	countersCollection     = "counters"
)

// counter holds the last integer id handed out for a collection
type counter struct {
	Seq int64 `bson:"seq"`
}

// nextID reserves the next integer id for a collection. Ids stay integers so
// the HTTP contract is identical whichever storage driver is selected.
func nextID(ctx context.Context, db *mongo.Database, collection string) (uint, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c counter
	err := db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": collection}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", collection, err)
	}
	return uint(c.Seq), nil
}

// EnsureMongoIndexes creates the unique (title, username) index on medias and
// the lookup indexes on publications.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(mediasCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}, {Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_medias_title_username"),
	})
	if err != nil {
		return fmt.Errorf("failed to create medias index: %w", err)
	}

	_, err = db.Collection(publicationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "media_id", Value: 1}}},
		{Keys: bson.D{{Key: "post_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create publications indexes: %w", err)
	}
	return nil
}

// publicationFilterDocument builds the date range query for a publication scan
func publicationFilterDocument(filter models.PublicationFilter) bson.M {
	dateRange := bson.M{}
	if filter.Before != nil {
		dateRange["$lt"] = *filter.Before
	}
	if filter.After != nil {
		dateRange["$gte"] = *filter.After
	}
	if len(dateRange) == 0 {
		return bson.M{}
	}
	return bson.M{"date": dateRange}
}
