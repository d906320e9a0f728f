package repository

import (
	"context"

	"attendance-service/internal/domain/entity"
	"attendance-service/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleLogRepository implements the ScheduleLogRepository interface
type MongoScheduleLogRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleLogRepository creates a new MongoDB schedule log repository
func NewMongoScheduleLogRepository(db *mongo.Database) repository.ScheduleLogRepository {
	collection := db.Collection("scheduleLogs")

	// Create indexes for better performance
	ctx := context.Background()

	scheduleIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "scheduleId", Value: 1},
			{Key: "timestamp", Value: 1},
		},
	}

	guildIndex := mongo.IndexModel{
		Keys: bson.M{"guildId": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		scheduleIndex,
		guildIndex,
	})

	return &MongoScheduleLogRepository{
		collection: collection,
	}
}

// Append stores one audit entry, assigning its id
func (r *MongoScheduleLogRepository) Append(ctx context.Context, log *entity.ScheduleLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

// FindByScheduleID returns a schedule's audit trail in order
func (r *MongoScheduleLogRepository) FindByScheduleID(ctx context.Context, scheduleID uint) ([]*entity.ScheduleLog, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"scheduleId": scheduleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*entity.ScheduleLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
