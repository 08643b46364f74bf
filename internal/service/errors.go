package service

import "errors"

// Validation failures surfaced to handlers. Each one is raised before any
// state is written, so a rejected request leaves the ledger untouched.
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrBelowMinimumDeposit     = errors.New("amount below the minimum deposit")
	ErrMissingProof            = errors.New("deposit proof is required")
	ErrDuplicateProof          = errors.New("this deposit proof was already used")
	ErrInsufficientBalance     = errors.New("amount exceeds the available balance")
	ErrInsufficientInvestment  = errors.New("amount exceeds the total invested")
	ErrInvalidWithdrawalMethod = errors.New("invalid withdrawal method")
	ErrCooldownActive          = errors.New("operation cooldown is still active")
)
