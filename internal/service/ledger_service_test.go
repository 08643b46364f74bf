package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfbtcc/Zenithdefi/internal/models"
	"github.com/wolfbtcc/Zenithdefi/internal/repository"
)

type ledgerFixture struct {
	users       *repository.MemoryUserRepository
	ledgers     *repository.MemoryLedgerRepository
	operations  *repository.MemoryOperationRepository
	withdrawals *repository.MemoryWithdrawalRepository
	rescues     *repository.MemoryRescueRepository
	proofs      *repository.MemoryProofRepository
	svc         LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		users:       repository.NewMemoryUserRepository(),
		ledgers:     repository.NewMemoryLedgerRepository(),
		operations:  repository.NewMemoryOperationRepository(),
		withdrawals: repository.NewMemoryWithdrawalRepository(),
		rescues:     repository.NewMemoryRescueRepository(),
		proofs:      repository.NewMemoryProofRepository(),
	}
	f.svc = NewLedgerService(f.users, f.ledgers, f.operations, f.withdrawals, f.rescues, f.proofs)
	return f
}

func (f *ledgerFixture) addUser(t *testing.T, name, email, referredBy string) *models.User {
	t.Helper()
	user := &models.User{
		Name:             name,
		Email:            email,
		RegistrationDate: time.Now().Format(time.RFC3339),
		ReferredBy:       referredBy,
		AffiliateCode:    Slugify(name),
	}
	require.NoError(t, f.users.SaveUser(user))
	return user
}

func TestRecordDepositCreditsBalanceAndPrincipal(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	fin, err := f.svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)

	assert.InDelta(t, 100, fin.Balance, 1e-9)
	assert.InDelta(t, 100, fin.TotalInvested, 1e-9)

	used, err := f.proofs.HasHash("ana@example.com", "hash-1")
	require.NoError(t, err)
	assert.True(t, used)
}

func TestRecordDepositRejectsReusedProof(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)

	_, err = f.svc.RecordDeposit("ana@example.com", 50, "hash-1")
	assert.ErrorIs(t, err, ErrDuplicateProof)

	fin, err := f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 100, fin.Balance, 1e-9)
	assert.InDelta(t, 100, fin.TotalInvested, 1e-9)
}

func TestRecordDepositValidation(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.RecordDeposit("ana@example.com", 0, "hash-1")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = f.svc.RecordDeposit("ana@example.com", 19.99, "hash-1")
	assert.ErrorIs(t, err, ErrBelowMinimumDeposit)

	_, err = f.svc.RecordDeposit("ana@example.com", 100, "")
	assert.ErrorIs(t, err, ErrMissingProof)

	fin, err := f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.Zero(t, fin.Balance)
	assert.Zero(t, fin.TotalInvested)
}

func TestExecuteOperationCreditsProfitOnly(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)

	op, err := f.svc.ExecuteOperation("ana@example.com", "BTC/USDT", "Binance > OKX", 0.42, 30, 1030)
	require.NoError(t, err)
	assert.False(t, op.ID.IsZero())

	fin, err := f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 130, fin.Balance, 1e-9)
	assert.InDelta(t, 100, fin.TotalInvested, 1e-9)
	assert.GreaterOrEqual(t, fin.TodayProfit, 30.0)
}

func TestExecuteOperationStampsCooldownOnceOnly(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.ExecuteOperation("ana@example.com", "BTC/USDT", "Binance > OKX", 0.42, 30, 1030)
	require.NoError(t, err)

	user, err := f.users.GetUserByEmail("ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, user.CooldownUntil)
	assert.True(t, user.InCooldown(time.Now()))
	assert.False(t, user.InCooldown(time.Now().Add(OperationCooldown+time.Minute)))

	firstCooldown := user.CooldownUntil

	// A later operation must not move the stamp.
	_, err = f.svc.ExecuteOperation("ana@example.com", "ETH/USDT", "Coinbase > KuCoin", 0.3, 10, 1010)
	require.NoError(t, err)

	user, err = f.users.GetUserByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, firstCooldown, user.CooldownUntil)
}

func TestAffiliateCommissionPropagation(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")
	f.addUser(t, "Bruno Costa", "bruno@example.com", "ana@example.com")

	_, err := f.svc.ExecuteOperation("bruno@example.com", "SOL/USDT", "OKX > Bitstamp", 0.5, 30, 1030)
	require.NoError(t, err)

	// The referred user keeps the full profit.
	brunoFin, err := f.svc.LoadFinancials("bruno@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 30, brunoFin.Balance, 1e-9)

	// The referrer's stored ledger gains exactly 25% of it, in both balance
	// and affiliate earnings.
	anaFin, err := f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, anaFin.Balance, 1e-9)
	assert.InDelta(t, 7.5, anaFin.AffiliateEarnings, 1e-9)

	// No operation record is appended for the referrer.
	anaOps, err := f.svc.GetOperations("ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, anaOps)
}

func TestRequestWithdrawalWithinAvailable(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)
	_, err = f.svc.ExecuteOperation("ana@example.com", "BTC/USDT", "Binance > OKX", 0.42, 30, 1030)
	require.NoError(t, err)

	w, err := f.svc.RequestWithdrawal("ana@example.com", &WithdrawalRequest{
		Method:   models.WithdrawalMethodUSDT,
		Amount:   25,
		FullName: "Ana Silva",
		Address:  "TWdConEx4mpl3",
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, w.Fee, 1e-9)
	assert.Equal(t, models.RequestStatusPending, w.Status(time.Now()))

	// Balance drops by the full amount, not amount minus fee.
	fin, err := f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 105, fin.Balance, 1e-9)
	assert.InDelta(t, 100, fin.TotalInvested, 1e-9)
}

func TestRequestWithdrawalRejectsBeyondAvailable(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)

	// Available is balance minus invested principal, zero right after a
	// deposit.
	_, err = f.svc.RequestWithdrawal("ana@example.com", &WithdrawalRequest{
		Method:   models.WithdrawalMethodPIX,
		Amount:   10,
		FullName: "Ana Silva",
		PixKey:   "ana@example.com",
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	withdrawals, err := f.svc.GetWithdrawals("ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, withdrawals)

	fin, err := f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 100, fin.Balance, 1e-9)
}

func TestRequestWithdrawalRejectsUnknownMethod(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.RequestWithdrawal("ana@example.com", &WithdrawalRequest{
		Method:   "WIRE",
		Amount:   10,
		FullName: "Ana Silva",
	})
	assert.ErrorIs(t, err, ErrInvalidWithdrawalMethod)
}

func TestRequestRescueReducesBalanceAndPrincipal(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)

	rescue, err := f.svc.RequestRescue("ana@example.com", &RescueRequest{
		Amount:      100,
		FullName:    "Ana Silva",
		USDTAddress: "TWdConEx4mpl3",
		Reason:      "personal emergency",
	})
	require.NoError(t, err)
	assert.InDelta(t, 28, rescue.Fee, 1e-9)
	assert.InDelta(t, 72, rescue.AmountReceived, 1e-9)
	assert.Equal(t, models.RequestStatusPending, rescue.Status(time.Now()))

	fin, err := f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 0, fin.Balance, 1e-9)
	assert.InDelta(t, 0, fin.TotalInvested, 1e-9)
}

func TestRequestRescueRejectsBeyondInvested(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	_, err := f.svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)

	_, err = f.svc.RequestRescue("ana@example.com", &RescueRequest{
		Amount:      150,
		FullName:    "Ana Silva",
		USDTAddress: "TWdConEx4mpl3",
	})
	assert.ErrorIs(t, err, ErrInsufficientInvestment)

	rescues, err := f.svc.GetRescues("ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, rescues)

	fin, err := f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 100, fin.Balance, 1e-9)
	assert.InDelta(t, 100, fin.TotalInvested, 1e-9)
}

// Full walkthrough: deposit, operation, withdrawal, rescue, then a rescue
// that must fail because nothing is invested anymore.
func TestLedgerWalkthrough(t *testing.T) {
	f := newLedgerFixture()
	f.addUser(t, "Ana Silva", "ana@example.com", "")

	fin, err := f.svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)
	assert.InDelta(t, 100, fin.Balance, 1e-9)
	assert.InDelta(t, 100, fin.TotalInvested, 1e-9)

	_, err = f.svc.ExecuteOperation("ana@example.com", "ADA/USDT", "Coinbase > Huobi", 0.43, 30, 1030)
	require.NoError(t, err)

	fin, err = f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 130, fin.Balance, 1e-9)
	assert.GreaterOrEqual(t, fin.TodayProfit, 30.0)

	w, err := f.svc.RequestWithdrawal("ana@example.com", &WithdrawalRequest{
		Method:   models.WithdrawalMethodUSDT,
		Amount:   25,
		FullName: "Ana Silva",
		Address:  "TWdConEx4mpl3",
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, w.Fee, 1e-9)

	rescue, err := f.svc.RequestRescue("ana@example.com", &RescueRequest{
		Amount:      100,
		FullName:    "Ana Silva",
		USDTAddress: "TWdConEx4mpl3",
	})
	require.NoError(t, err)
	assert.InDelta(t, 28, rescue.Fee, 1e-9)
	assert.InDelta(t, 72, rescue.AmountReceived, 1e-9)

	fin, err = f.svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 5, fin.Balance, 1e-9)
	assert.InDelta(t, 0, fin.TotalInvested, 1e-9)

	_, err = f.svc.RequestRescue("ana@example.com", &RescueRequest{
		Amount:      1,
		FullName:    "Ana Silva",
		USDTAddress: "TWdConEx4mpl3",
	})
	assert.ErrorIs(t, err, ErrInsufficientInvestment)
}

// flakyLedgerRepository fails the next SaveFinancials call once, then
// behaves normally.
type flakyLedgerRepository struct {
	repository.LedgerRepository
	failNextSave bool
}

func (r *flakyLedgerRepository) SaveFinancials(fin *models.Financials) error {
	if r.failNextSave {
		r.failNextSave = false
		return errors.New("storage unavailable")
	}
	return r.LedgerRepository.SaveFinancials(fin)
}

func TestRecordDepositProofSurvivesFailedSave(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	ledgers := &flakyLedgerRepository{LedgerRepository: repository.NewMemoryLedgerRepository(), failNextSave: true}
	proofs := repository.NewMemoryProofRepository()
	svc := NewLedgerService(users, ledgers,
		repository.NewMemoryOperationRepository(),
		repository.NewMemoryWithdrawalRepository(),
		repository.NewMemoryRescueRepository(), proofs)

	_, err := svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.Error(t, err)

	// The failed write must not consume the proof hash.
	used, err := proofs.HasHash("ana@example.com", "hash-1")
	require.NoError(t, err)
	assert.False(t, used)

	// Retrying the same deposit with the same proof succeeds.
	fin, err := svc.RecordDeposit("ana@example.com", 100, "hash-1")
	require.NoError(t, err)
	assert.InDelta(t, 100, fin.Balance, 1e-9)
	assert.InDelta(t, 100, fin.TotalInvested, 1e-9)
}

func TestRequestWithdrawalFailedDeductionLeavesNoRecord(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	ledgers := &flakyLedgerRepository{LedgerRepository: repository.NewMemoryLedgerRepository()}
	require.NoError(t, ledgers.SaveFinancials(&models.Financials{
		Email:         "ana@example.com",
		Balance:       130,
		TotalInvested: 100,
	}))
	ledgers.failNextSave = true

	svc := NewLedgerService(users, ledgers,
		repository.NewMemoryOperationRepository(),
		repository.NewMemoryWithdrawalRepository(),
		repository.NewMemoryRescueRepository(),
		repository.NewMemoryProofRepository())

	_, err := svc.RequestWithdrawal("ana@example.com", &WithdrawalRequest{
		Method:   models.WithdrawalMethodUSDT,
		Amount:   25,
		FullName: "Ana Silva",
		Address:  "TWdConEx4mpl3",
	})
	require.Error(t, err)

	// No payout record without the matching deduction, and the balance is
	// untouched.
	withdrawals, err := svc.GetWithdrawals("ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, withdrawals)

	fin, err := svc.LoadFinancials("ana@example.com")
	require.NoError(t, err)
	assert.InDelta(t, 130, fin.Balance, 1e-9)
}

func TestCalculateProfitsWindows(t *testing.T) {
	now := time.Date(2025, time.March, 15, 14, 0, 0, 0, time.Local)
	registered := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.Local)

	operations := []*models.Operation{
		{Profit: 10, Timestamp: now.Add(-time.Hour)},                // today, after the 30-day window
		{Profit: 5, Timestamp: registered.Add(9 * 24 * time.Hour)},  // inside the 30-day window
		{Profit: 3, Timestamp: registered.Add(35 * 24 * time.Hour)}, // after the window, not today
		{Profit: 2, Timestamp: registered.Add(-24 * time.Hour)},     // before registration
	}

	todayProfit, monthProfit := CalculateProfits(operations, registered, now)
	assert.InDelta(t, 10, todayProfit, 1e-9)
	assert.InDelta(t, 5, monthProfit, 1e-9)
}

func TestCalculateProfitsUnknownRegistration(t *testing.T) {
	now := time.Now()
	operations := []*models.Operation{{Profit: 10, Timestamp: now}}

	todayProfit, monthProfit := CalculateProfits(operations, time.Time{}, now)
	assert.InDelta(t, 10, todayProfit, 1e-9)
	assert.Zero(t, monthProfit)
}
