package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/public-space/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	// CreatePost assigns the id and inserts the post in a single write.
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	// GetAllPosts returns every post, newest first.
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	// CountPostsByAuthorBetween counts posts with start <= created_at < end.
	CountPostsByAuthorBetween(ctx context.Context, authorID string, start, end time.Time) (int64, error)
	// ToggleLike flips userID's membership in the like set atomically and
	// returns the updated post.
	ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error)
	AddComment(ctx context.Context, postID string, comment models.Comment) error
	DeletePost(ctx context.Context, id string) error
	DeleteAllPosts(ctx context.Context) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the indexes used by the feed and quota queries
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return storeError("create post indexes", err)
	}
	return nil
}

func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	// nil slices would be stored as null and break $push / $in
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		post.ID = primitive.NilObjectID
		return storeError("insert post", err)
	}
	return nil
}

func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storeError("get post", err)
	}
	return &post, nil
}

func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, storeError("list posts", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, storeError("decode posts", err)
	}
	return posts, nil
}

func (r *MongoPostRepository) CountPostsByAuthorBetween(ctx context.Context, authorID string, start, end time.Time) (int64, error) {
	filter := bson.M{
		"author_id":  authorID,
		"created_at": bson.M{"$gte": start, "$lt": end},
	}
	n, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, storeError("count posts", err)
	}
	return n, nil
}

// ToggleLike runs the toggle as one pipeline update so readers never see a
// half-applied change and a user id can never be stored twice.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrNotFound
	}

	likes := bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}
	user := bson.M{"$literal": userID}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{"likes": bson.M{"$cond": bson.M{
			"if":   bson.M{"$in": bson.A{user, likes}},
			"then": bson.M{"$setDifference": bson.A{likes, bson.A{user}}},
			"else": bson.M{"$concatArrays": bson.A{likes, bson.A{user}}},
		}}}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, storeError("toggle like", err)
	}
	return &post, nil
}

func (r *MongoPostRepository) AddComment(ctx context.Context, postID string, comment models.Comment) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return storeError("add comment", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return storeError("delete post", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) DeleteAllPosts(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return storeError("delete posts", err)
	}
	return nil
}
