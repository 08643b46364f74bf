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

type OperationRepository interface {
	SaveOperation(op *models.Operation) error
	GetOperationsByEmail(email string) ([]*models.Operation, error)
	CountByEmail(email string) (int64, error)
}

type MongoOperationRepository struct {
	collection *mongo.Collection
}

func NewOperationRepository(client *mongo.Client, dbName, collectionName string) OperationRepository {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoOperationRepository{collection: collection}
}

func (r *MongoOperationRepository) SaveOperation(op *models.Operation) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if op.ID.IsZero() {
		op.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, op)
	return err
}

// GetOperationsByEmail returns the full operation log, newest first.
func (r *MongoOperationRepository) GetOperationsByEmail(email string) ([]*models.Operation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var operations []*models.Operation
	if err := cursor.All(ctx, &operations); err != nil {
		return nil, err
	}
	return operations, nil
}

func (r *MongoOperationRepository) CountByEmail(email string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"email": email})
}
