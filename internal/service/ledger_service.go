package service

import (
	"log"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/repository"
)

const (
	// MinDeposit is the smallest accepted deposit, in dollars.
	MinDeposit = 20.0
	// WithdrawalFeeRate is disclosed on the withdrawal record; it is not a
	// second deduction on top of the withdrawn amount.
	WithdrawalFeeRate = 0.03
	// RescueFeeRate applies to early redemption of invested principal.
	RescueFeeRate = 0.28
	// AffiliateCommissionRate is the referrer's share of each operation
	// profit, paid by the platform as a bonus.
	AffiliateCommissionRate = 0.25
	// OperationCooldown starts after a user's first-ever operation.
	OperationCooldown = 3 * time.Hour
	// MonthWindow bounds the month-profit projection, counted from the
	// user's registration.
	MonthWindow = 30 * 24 * time.Hour
)

type WithdrawalRequest struct {
	Method   models.WithdrawalMethod
	Amount   float64
	FullName string
	Address  string
	PixKey   string
}

type RescueRequest struct {
	Amount      float64
	FullName    string
	USDTAddress string
	Reason      string
}

type LedgerService interface {
	LoadFinancials(email string) (*models.Financials, error)
	RecordDeposit(email string, amount float64, proofHash string) (*models.Financials, error)
	ExecuteOperation(email, pair, exchanges string, percentage, profit, totalReturn float64) (*models.Operation, error)
	RequestWithdrawal(email string, req *WithdrawalRequest) (*models.Withdrawal, error)
	RequestRescue(email string, req *RescueRequest) (*models.InvestmentRescue, error)
	GetOperations(email string) ([]*models.Operation, error)
	GetWithdrawals(email string) ([]*models.Withdrawal, error)
	GetRescues(email string) ([]*models.InvestmentRescue, error)
}

type ledgerService struct {
	userRepo       repository.UserRepository
	ledgerRepo     repository.LedgerRepository
	operationRepo  repository.OperationRepository
	withdrawalRepo repository.WithdrawalRepository
	rescueRepo     repository.RescueRepository
	proofRepo      repository.ProofRepository
}

func NewLedgerService(
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	operationRepo repository.OperationRepository,
	withdrawalRepo repository.WithdrawalRepository,
	rescueRepo repository.RescueRepository,
	proofRepo repository.ProofRepository,
) LedgerService {
	return &ledgerService{
		userRepo:       userRepo,
		ledgerRepo:     ledgerRepo,
		operationRepo:  operationRepo,
		withdrawalRepo: withdrawalRepo,
		rescueRepo:     rescueRepo,
		proofRepo:      proofRepo,
	}
}

// CalculateProfits is the pure projection over the operation log. Today's
// profit sums operations inside the current local calendar day; month profit
// sums operations inside [registeredAt, registeredAt+30d). A zero
// registration time yields a zero month profit.
func CalculateProfits(operations []*models.Operation, registeredAt, now time.Time) (todayProfit, monthProfit float64) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var monthEnd time.Time
	if !registeredAt.IsZero() {
		monthEnd = registeredAt.Add(MonthWindow)
	}

	for _, op := range operations {
		if !op.Timestamp.Before(startOfToday) {
			todayProfit += op.Profit
		}
		if !registeredAt.IsZero() && !op.Timestamp.Before(registeredAt) && op.Timestamp.Before(monthEnd) {
			monthProfit += op.Profit
		}
	}
	return todayProfit, monthProfit
}

// LoadFinancials returns the stored ledger summary with today/month profit
// recomputed from the full operation log. Derived values are never trusted
// from a previous load.
func (s *ledgerService) LoadFinancials(email string) (*models.Financials, error) {
	fin, err := s.ledgerRepo.GetFinancials(email)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	operations, err := s.operationRepo.GetOperationsByEmail(email)
	if err != nil {
		return nil, err
	}

	var registeredAt time.Time
	if user != nil {
		registeredAt = user.RegisteredAt()
	}
	fin.TodayProfit, fin.MonthProfit = CalculateProfits(operations, registeredAt, time.Now())
	return fin, nil
}

// RecordDeposit credits the balance and invested principal by the deposit
// amount. Exactly one deposit is accepted per proof hash; a replayed proof
// fails without any mutation.
func (s *ledgerService) RecordDeposit(email string, amount float64, proofHash string) (*models.Financials, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount < MinDeposit {
		return nil, ErrBelowMinimumDeposit
	}
	if proofHash == "" {
		return nil, ErrMissingProof
	}

	used, err := s.proofRepo.HasHash(email, proofHash)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, ErrDuplicateProof
	}

	fin, err := s.ledgerRepo.GetFinancials(email)
	if err != nil {
		return nil, err
	}

	fin.Balance += amount
	fin.TotalInvested += amount
	if err := s.ledgerRepo.SaveFinancials(fin); err != nil {
		return nil, err
	}

	// The hash is consumed last so a failed ledger write leaves the proof
	// replayable on retry.
	if err := s.proofRepo.AddHash(email, proofHash); err != nil {
		return nil, err
	}

	return s.LoadFinancials(email)
}

// ExecuteOperation appends one immutable operation record, credits its
// profit to the balance and propagates the affiliate commission. The
// first-ever operation also stamps the 3-hour cooldown on the profile;
// enforcing the cooldown is the caller's job.
func (s *ledgerService) ExecuteOperation(email, pair, exchanges string, percentage, profit, totalReturn float64) (*models.Operation, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	priorCount, err := s.operationRepo.CountByEmail(email)
	if err != nil {
		return nil, err
	}

	op := &models.Operation{
		Email:       email,
		Pair:        pair,
		Exchanges:   exchanges,
		Percentage:  percentage,
		Profit:      profit,
		TotalReturn: totalReturn,
		Timestamp:   time.Now(),
	}
	if err := s.operationRepo.SaveOperation(op); err != nil {
		return nil, err
	}

	fin, err := s.ledgerRepo.GetFinancials(email)
	if err != nil {
		return nil, err
	}
	fin.Balance += profit
	if err := s.ledgerRepo.SaveFinancials(fin); err != nil {
		return nil, err
	}

	if priorCount == 0 {
		user.CooldownUntil = time.Now().Add(OperationCooldown).Format(time.RFC3339)
		if err := s.userRepo.UpdateUser(user); err != nil {
			return nil, err
		}
	}

	// Commission is a platform bonus credited straight into the referrer's
	// stored ledger. The write is best effort and non-atomic with the
	// operation above; a failure is logged, never rolled back into the
	// referred user's result.
	if user.ReferredBy != "" {
		commission := profit * AffiliateCommissionRate
		if err := s.ledgerRepo.CreditAffiliate(user.ReferredBy, commission); err != nil {
			log.Printf("affiliate credit to %s failed: %v", user.ReferredBy, err)
		}
	}

	return op, nil
}

// RequestWithdrawal creates a withdrawal record and deducts the requested
// amount from the balance. The 3% fee is informational: it is carried on the
// record but not deducted a second time.
func (s *ledgerService) RequestWithdrawal(email string, req *WithdrawalRequest) (*models.Withdrawal, error) {
	if req.Method != models.WithdrawalMethodUSDT && req.Method != models.WithdrawalMethodPIX {
		return nil, ErrInvalidWithdrawalMethod
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	fin, err := s.ledgerRepo.GetFinancials(email)
	if err != nil {
		return nil, err
	}
	if req.Amount > fin.Available() {
		return nil, ErrInsufficientBalance
	}

	// The deduction lands before the payout record exists, so a failure can
	// never leave a payable record without the matching deduction.
	fin.Balance -= req.Amount
	if err := s.ledgerRepo.SaveFinancials(fin); err != nil {
		return nil, err
	}

	withdrawal := &models.Withdrawal{
		Email:     email,
		Method:    req.Method,
		Amount:    req.Amount,
		Fee:       req.Amount * WithdrawalFeeRate,
		FullName:  req.FullName,
		Address:   req.Address,
		PixKey:    req.PixKey,
		Timestamp: time.Now(),
	}
	if err := s.withdrawalRepo.SaveWithdrawal(withdrawal); err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// RequestRescue redeems invested principal early. Both balance and total
// invested drop by the rescued amount; the user receives the amount minus
// the 28% fee.
func (s *ledgerService) RequestRescue(email string, req *RescueRequest) (*models.InvestmentRescue, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	fin, err := s.ledgerRepo.GetFinancials(email)
	if err != nil {
		return nil, err
	}
	if req.Amount > fin.TotalInvested {
		return nil, ErrInsufficientInvestment
	}

	fin.Balance -= req.Amount
	fin.TotalInvested -= req.Amount
	if err := s.ledgerRepo.SaveFinancials(fin); err != nil {
		return nil, err
	}

	fee := req.Amount * RescueFeeRate
	rescue := &models.InvestmentRescue{
		Email:          email,
		AmountRescued:  req.Amount,
		Fee:            fee,
		AmountReceived: req.Amount - fee,
		FullName:       req.FullName,
		USDTAddress:    req.USDTAddress,
		Reason:         req.Reason,
		Timestamp:      time.Now(),
	}
	if err := s.rescueRepo.SaveRescue(rescue); err != nil {
		return nil, err
	}
	return rescue, nil
}

func (s *ledgerService) GetOperations(email string) ([]*models.Operation, error) {
	return s.operationRepo.GetOperationsByEmail(email)
}

func (s *ledgerService) GetWithdrawals(email string) ([]*models.Withdrawal, error) {
	return s.withdrawalRepo.GetWithdrawalsByEmail(email)
}

func (s *ledgerService) GetRescues(email string) ([]*models.InvestmentRescue, error) {
	return s.rescueRepo.GetRescuesByEmail(email)
}
