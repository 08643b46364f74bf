package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operation is one completed arbitrage trade. Records are immutable once
// written and ordered newest first for display.
type Operation struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Email       string             `json:"email" bson:"email"`
	Pair        string             `json:"pair" bson:"pair"`
	Exchanges   string             `json:"exchanges" bson:"exchanges"`
	Percentage  float64            `json:"percentage" bson:"percentage"`
	Profit      float64            `json:"profit" bson:"profit"`
	TotalReturn float64            `json:"total_return" bson:"total_return"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
}
