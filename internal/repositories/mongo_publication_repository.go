package repositories

import (
	"context"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPublicationRepository implements PublicationRepository for MongoDB
type MongoPublicationRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoPublicationRepository creates a new MongoPublicationRepository
func NewMongoPublicationRepository(db *mongo.Database) *MongoPublicationRepository {
	return &MongoPublicationRepository{db: db, collection: db.Collection(publicationsCollection)}
}

func (r *MongoPublicationRepository) CreatePublication(ctx context.Context, publication *models.Publication) error {
	id, err := nextID(ctx, r.db, publicationsCollection)
	if err != nil {
		return err
	}
	publication.ID = id
	_, err = r.collection.InsertOne(ctx, publication)
	return translateMongoError(err)
}

func (r *MongoPublicationRepository) GetPublications(ctx context.Context, filter models.PublicationFilter) ([]models.Publication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, publicationFilterDocument(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	publications := make([]models.Publication, 0)
	if err = cursor.All(ctx, &publications); err != nil {
		return nil, err
	}
	return publications, nil
}

func (r *MongoPublicationRepository) GetPublicationByID(ctx context.Context, id uint) (*models.Publication, error) {
	var publication models.Publication
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&publication); err != nil {
		return nil, translateMongoError(err)
	}
	return &publication, nil
}

func (r *MongoPublicationRepository) UpdatePublication(ctx context.Context, publication *models.Publication) error {
	update := bson.M{"$set": bson.M{
		"media_id": publication.MediaID,
		"post_id":  publication.PostID,
		"date":     publication.Date,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": publication.ID}, update)
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *MongoPublicationRepository) DeletePublication(ctx context.Context, id uint) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *MongoPublicationRepository) DeleteAllPublications(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.D{})
	return err
}

func (r *MongoPublicationRepository) ExistsByMediaID(ctx context.Context, mediaID uint) (bool, error) {
	return r.exists(ctx, bson.M{"media_id": mediaID})
}

func (r *MongoPublicationRepository) ExistsByPostID(ctx context.Context, postID uint) (bool, error) {
	return r.exists(ctx, bson.M{"post_id": postID})
}

func (r *MongoPublicationRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
