package repository

import (
	"context"
	"time"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightRepository implements FlightRepository
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository creates a new flight repository
func NewMongoFlightRepository(db *mongo.Database) repository.FlightRepository {
	collection := db.Collection("flights")

	// Index for per-user queries sorted by departure
	ctx := context.Background()
	userIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "seatAssignments.userId", Value: 1},
			{Key: "departureUtc", Value: 1},
		},
	}
	collection.Indexes().CreateOne(ctx, userIndex)

	return &MongoFlightRepository{
		collection: collection,
	}
}

// InsertMany stores a batch of flights
func (r *MongoFlightRepository) InsertMany(ctx context.Context, flights []*entity.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(flights))
	for i, flight := range flights {
		if flight.ID == "" {
			flight.ID = primitive.NewObjectID().Hex()
		}
		flight.CreatedAt = now
		flight.UpdatedAt = now
		docs[i] = flight
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByUser returns all flights carrying a seat assignment for the user,
// ordered by departure time
func (r *MongoFlightRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "departureUtc", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"seatAssignments.userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var flights []*entity.Flight
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}
