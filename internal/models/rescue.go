package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RescuePendingWindow is how long a rescue is reported as pending after
// creation.
const RescuePendingWindow = 72 * time.Hour

// InvestmentRescue is an early redemption of invested principal.
type InvestmentRescue struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	Email          string             `json:"email" bson:"email"`
	AmountRescued  float64            `json:"amount_rescued" bson:"amount_rescued"`
	Fee            float64            `json:"fee" bson:"fee"`
	AmountReceived float64            `json:"amount_received" bson:"amount_received"`
	FullName       string             `json:"full_name" bson:"full_name"`
	USDTAddress    string             `json:"usdt_address" bson:"usdt_address"`
	Reason         string             `json:"reason" bson:"reason"`
	Timestamp      time.Time          `json:"timestamp" bson:"timestamp"`
}

func (r *InvestmentRescue) Status(now time.Time) RequestStatus {
	if now.Sub(r.Timestamp) < RescuePendingWindow {
		return RequestStatusPending
	}
	return RequestStatusCompleted
}
