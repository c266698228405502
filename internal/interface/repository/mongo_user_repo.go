package repository

import (
	"context"
	"errors"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements UserRepository
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new user repository
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	collection := db.Collection("users")

	// Create unique index on username
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"username": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoUserRepository{
		collection: collection,
	}
}

// Insert stores a new user
func (r *MongoUserRepository) Insert(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// FindByID finds a user by id
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update replaces an existing user document
func (r *MongoUserRepository) Update(ctx context.Context, user *entity.User) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}
