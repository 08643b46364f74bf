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

type RescueRepository interface {
	SaveRescue(rescue *models.InvestmentRescue) error
	GetRescuesByEmail(email string) ([]*models.InvestmentRescue, error)
}

type MongoRescueRepository struct {
	collection *mongo.Collection
}

func NewRescueRepository(client *mongo.Client, dbName, collectionName string) RescueRepository {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoRescueRepository{collection: collection}
}

func (r *MongoRescueRepository) SaveRescue(rescue *models.InvestmentRescue) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if rescue.ID.IsZero() {
		rescue.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, rescue)
	return err
}

func (r *MongoRescueRepository) GetRescuesByEmail(email string) ([]*models.InvestmentRescue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rescues []*models.InvestmentRescue
	if err := cursor.All(ctx, &rescues); err != nil {
		return nil, err
	}
	return rescues, nil
}
