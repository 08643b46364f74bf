package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LedgerRepository interface {
	GetFinancials(email string) (*models.Financials, error)
	SaveFinancials(fin *models.Financials) error
	CreditAffiliate(email string, commission float64) error
}

type MongoLedgerRepository struct {
	collection *mongo.Collection
}

func NewLedgerRepository(client *mongo.Client, dbName, collectionName string) LedgerRepository {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoLedgerRepository{collection: collection}
}

// GetFinancials returns the stored ledger summary, defaulting every field to
// zero when no document exists yet. Derived profit fields are left for the
// service layer to fill in.
func (r *MongoLedgerRepository) GetFinancials(email string) (*models.Financials, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var fin models.Financials
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&fin)
	if err == mongo.ErrNoDocuments {
		return &models.Financials{Email: email}, nil
	}
	if err != nil {
		return nil, err
	}
	return &fin, nil
}

func (r *MongoLedgerRepository) SaveFinancials(fin *models.Financials) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"balance":            fin.Balance,
		"total_invested":     fin.TotalInvested,
		"affiliate_earnings": fin.AffiliateEarnings,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": fin.Email}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save financials: %w", err)
	}
	return nil
}

// CreditAffiliate adds the commission to the referrer's stored balance and
// affiliate earnings with a single targeted update. The write goes straight
// at the durable record and does not touch any in-memory session state the
// referrer may have.
func (r *MongoLedgerRepository) CreditAffiliate(email string, commission float64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$inc": bson.M{
		"balance":            commission,
		"affiliate_earnings": commission,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to credit affiliate commission: %w", err)
	}
	return nil
}
