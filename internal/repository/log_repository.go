package repository

import (
	"context"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LogRepository interface {
	SaveLog(entry *models.LogEntry) error
	GetAllLogs(page, limit int) ([]*models.LogEntry, error)
	GetLogsByEmail(email string, page, limit int) ([]*models.LogEntry, error)
}

type MongoLogRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(client *mongo.Client, dbName, collectionName string) LogRepository {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoLogRepository{collection: collection}
}

func (r *MongoLogRepository) SaveLog(entry *models.LogEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *MongoLogRepository) GetAllLogs(page, limit int) ([]*models.LogEntry, error) {
	return r.findLogs(bson.M{}, page, limit)
}

func (r *MongoLogRepository) GetLogsByEmail(email string, page, limit int) ([]*models.LogEntry, error) {
	return r.findLogs(bson.M{"email": email}, page, limit)
}

func (r *MongoLogRepository) findLogs(filter bson.M, page, limit int) ([]*models.LogEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.LogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
