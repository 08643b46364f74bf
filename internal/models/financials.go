package models

// Financials is the durable ledger summary for one user. TodayProfit and
// MonthProfit are projections over the operation log, recomputed on every
// load; they are never persisted.
type Financials struct {
	Email             string  `json:"email" bson:"email"`
	Balance           float64 `json:"balance" bson:"balance"`
	TotalInvested     float64 `json:"total_invested" bson:"total_invested"`
	AffiliateEarnings float64 `json:"affiliate_earnings" bson:"affiliate_earnings"`
	TodayProfit       float64 `json:"today_profit" bson:"-"`
	MonthProfit       float64 `json:"month_profit" bson:"-"`
}

// Available is the portion of the balance not locked as invested principal.
// Withdrawals are capped by this value.
func (f *Financials) Available() float64 {
	return f.Balance - f.TotalInvested
}
