package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProofRepository interface {
	HasHash(email, hash string) (bool, error)
	AddHash(email, hash string) error
}

// MongoProofRepository stores one document per accepted deposit-proof hash.
// Membership of (email, hash) is the double-deposit guard.
type MongoProofRepository struct {
	collection *mongo.Collection
}

func NewProofRepository(client *mongo.Client, dbName, collectionName string) ProofRepository {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoProofRepository{collection: collection}
}

func (r *MongoProofRepository) HasHash(email, hash string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"email": email, "hash": hash})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoProofRepository) AddHash(email, hash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, bson.M{
		"email":      email,
		"hash":       hash,
		"created_at": time.Now(),
	})
	return err
}
