package models

import "time"

// Opportunity is a simulated spread between two exchanges, offered to the
// user for a limited window before it is replaced.
type Opportunity struct {
	Pair         string    `json:"pair"`
	BuyExchange  string    `json:"buy_exchange"`
	SellExchange string    `json:"sell_exchange"`
	Percentage   float64   `json:"percentage"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// Exchanges renders the route label stored on operation records.
func (o *Opportunity) Exchanges() string {
	return o.BuyExchange + " > " + o.SellExchange
}

// OperationQuote is the money breakdown of executing an opportunity with a
// given investment. The user keeps 70% of the gross spread, the platform
// takes 30%.
type OperationQuote struct {
	Investment  float64 `json:"investment"`
	Percentage  float64 `json:"percentage"`
	GrossProfit float64 `json:"gross_profit"`
	UserProfit  float64 `json:"user_profit"`
	PlatformFee float64 `json:"platform_fee"`
	TotalReturn float64 `json:"total_return"`
}
