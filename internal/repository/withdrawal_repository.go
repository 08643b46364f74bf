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

type WithdrawalRepository interface {
	SaveWithdrawal(withdrawal *models.Withdrawal) error
	GetWithdrawalsByEmail(email string) ([]*models.Withdrawal, error)
}

type MongoWithdrawalRepository struct {
	collection *mongo.Collection
}

func NewWithdrawalRepository(client *mongo.Client, dbName, collectionName string) WithdrawalRepository {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoWithdrawalRepository{collection: collection}
}

func (r *MongoWithdrawalRepository) SaveWithdrawal(withdrawal *models.Withdrawal) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if withdrawal.ID.IsZero() {
		withdrawal.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, withdrawal)
	return err
}

func (r *MongoWithdrawalRepository) GetWithdrawalsByEmail(email string) ([]*models.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var withdrawals []*models.Withdrawal
	if err := cursor.All(ctx, &withdrawals); err != nil {
		return nil, err
	}
	return withdrawals, nil
}
