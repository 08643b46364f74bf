package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WithdrawalMethod string

const (
	WithdrawalMethodUSDT WithdrawalMethod = "USDT"
	WithdrawalMethodPIX  WithdrawalMethod = "PIX"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusCompleted RequestStatus = "COMPLETED"
)

// WithdrawalPendingWindow is how long a withdrawal is reported as pending
// after creation. Status is derived at read time, never stored.
const WithdrawalPendingWindow = 48 * time.Hour

type Withdrawal struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Email     string             `json:"email" bson:"email"`
	Method    WithdrawalMethod   `json:"method" bson:"method"`
	Amount    float64            `json:"amount" bson:"amount"`
	Fee       float64            `json:"fee" bson:"fee"`
	FullName  string             `json:"full_name" bson:"full_name"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	PixKey    string             `json:"pix_key,omitempty" bson:"pix_key,omitempty"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
}

func (w *Withdrawal) Status(now time.Time) RequestStatus {
	if now.Sub(w.Timestamp) < WithdrawalPendingWindow {
		return RequestStatusPending
	}
	return RequestStatusCompleted
}
