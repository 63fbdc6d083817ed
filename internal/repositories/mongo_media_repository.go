package repositories

import (
	"context"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMediaRepository implements MediaRepository for MongoDB
type MongoMediaRepository struct {
	db           *mongo.Database
	collection   *mongo.Collection
	publications *mongo.Collection
}

// NewMongoMediaRepository creates a new MongoMediaRepository
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{
		db:           db,
		collection:   db.Collection(mediasCollection),
		publications: db.Collection(publicationsCollection),
	}
}

func (r *MongoMediaRepository) CreateMedia(ctx context.Context, media *models.Media) error {
	id, err := nextID(ctx, r.db, mediasCollection)
	if err != nil {
		return err
	}
	media.ID = id
	_, err = r.collection.InsertOne(ctx, media)
	return translateMongoError(err)
}

func (r *MongoMediaRepository) GetMedias(ctx context.Context) ([]models.Media, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	medias := make([]models.Media, 0)
	if err = cursor.All(ctx, &medias); err != nil {
		return nil, err
	}
	return medias, nil
}

func (r *MongoMediaRepository) GetMediaByID(ctx context.Context, id uint) (*models.Media, error) {
	var media models.Media
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&media); err != nil {
		return nil, translateMongoError(err)
	}
	return &media, nil
}

func (r *MongoMediaRepository) GetMediaByTitleAndUsername(ctx context.Context, title, username string) (*models.Media, error) {
	var media models.Media
	if err := r.collection.FindOne(ctx, bson.M{"title": title, "username": username}).Decode(&media); err != nil {
		return nil, translateMongoError(err)
	}
	return &media, nil
}

func (r *MongoMediaRepository) UpdateMedia(ctx context.Context, media *models.Media) error {
	update := bson.M{"$set": bson.M{"title": media.Title, "username": media.Username}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": media.ID}, update)
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteMedia checks for referencing publications before deleting. Mongo has
// no foreign keys, so a publication created between the two calls is not seen.
func (r *MongoMediaRepository) DeleteMedia(ctx context.Context, id uint) error {
	count, err := r.publications.CountDocuments(ctx, bson.M{"media_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrReferenced
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *MongoMediaRepository) DeleteAllMedias(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.D{})
	return err
}
