package repositories

import (
	"context"

	"github.com/anonto42/publication-scheduler/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	db           *mongo.Database
	collection   *mongo.Collection
	publications *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{
		db:           db,
		collection:   db.Collection(postsCollection),
		publications: db.Collection(publicationsCollection),
	}
}

func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	id, err := nextID(ctx, r.db, postsCollection)
	if err != nil {
		return err
	}
	post.ID = id
	_, err = r.collection.InsertOne(ctx, post)
	return translateMongoError(err)
}

func (r *MongoPostRepository) GetPosts(ctx context.Context) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := make([]models.Post, 0)
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *MongoPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translateMongoError(err)
	}
	return &post, nil
}

func (r *MongoPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	update := bson.M{"$set": bson.M{"title": post.Title, "text": post.Text, "image": post.Image}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *MongoPostRepository) DeletePost(ctx context.Context, id uint) error {
	count, err := r.publications.CountDocuments(ctx, bson.M{"post_id": id}, options.Count().SetLimit(1))
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

func (r *MongoPostRepository) DeleteAllPosts(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.D{})
	return err
}
