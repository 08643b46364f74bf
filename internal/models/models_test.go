package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawalStatusWindow(t *testing.T) {
	now := time.Now()
	w := &Withdrawal{Timestamp: now.Add(-47 * time.Hour)}
	assert.Equal(t, RequestStatusPending, w.Status(now))

	w.Timestamp = now.Add(-49 * time.Hour)
	assert.Equal(t, RequestStatusCompleted, w.Status(now))
}

func TestRescueStatusWindow(t *testing.T) {
	now := time.Now()
	r := &InvestmentRescue{Timestamp: now.Add(-71 * time.Hour)}
	assert.Equal(t, RequestStatusPending, r.Status(now))

	r.Timestamp = now.Add(-73 * time.Hour)
	assert.Equal(t, RequestStatusCompleted, r.Status(now))
}

func TestUserCooldown(t *testing.T) {
	now := time.Now()

	u := &User{}
	assert.False(t, u.InCooldown(now))

	u.CooldownUntil = now.Add(time.Hour).Format(time.RFC3339)
	assert.True(t, u.InCooldown(now))
	assert.False(t, u.InCooldown(now.Add(2*time.Hour)))

	u.CooldownUntil = "garbage"
	assert.False(t, u.InCooldown(now))
}

func TestRegisteredAtParsing(t *testing.T) {
	u := &User{RegistrationDate: "2025-03-15T10:00:00Z"}
	assert.Equal(t, 2025, u.RegisteredAt().Year())

	u.RegistrationDate = "not-a-date"
	assert.True(t, u.RegisteredAt().IsZero())
}

func TestAvailableBalance(t *testing.T) {
	f := &Financials{Balance: 130, TotalInvested: 100}
	assert.InDelta(t, 30, f.Available(), 1e-9)
}
