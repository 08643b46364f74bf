package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wolfbtcc/Zenithdefi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory implementations of the repository interfaces, keyed by email the
// same way the persisted layout is. They back the test suite and local runs
// without a database.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepository) SaveUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *MemoryUserRepository) GetUserByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *MemoryUserRepository) GetUserByAffiliateCode(code string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.AffiliateCode == code {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) GetAllUsers() ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (r *MemoryUserRepository) GetUsersReferredBy(email string) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*models.User
	for _, user := range r.users {
		if user.ReferredBy == email {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) ListEmails() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emails := make([]string, 0, len(r.users))
	for email := range r.users {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails, nil
}

func (r *MemoryUserRepository) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; !ok {
		return fmt.Errorf("no user found with email: %s", user.Email)
	}
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

type MemoryLedgerRepository struct {
	mu         sync.RWMutex
	financials map[string]*models.Financials
}

func NewMemoryLedgerRepository() *MemoryLedgerRepository {
	return &MemoryLedgerRepository{financials: make(map[string]*models.Financials)}
}

func (r *MemoryLedgerRepository) GetFinancials(email string) (*models.Financials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fin, ok := r.financials[email]
	if !ok {
		return &models.Financials{Email: email}, nil
	}
	copied := *fin
	return &copied, nil
}

func (r *MemoryLedgerRepository) SaveFinancials(fin *models.Financials) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.financials[fin.Email] = &models.Financials{
		Email:             fin.Email,
		Balance:           fin.Balance,
		TotalInvested:     fin.TotalInvested,
		AffiliateEarnings: fin.AffiliateEarnings,
	}
	return nil
}

func (r *MemoryLedgerRepository) CreditAffiliate(email string, commission float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fin, ok := r.financials[email]
	if !ok {
		fin = &models.Financials{Email: email}
		r.financials[email] = fin
	}
	fin.Balance += commission
	fin.AffiliateEarnings += commission
	return nil
}

type MemoryOperationRepository struct {
	mu         sync.RWMutex
	operations map[string][]*models.Operation
}

func NewMemoryOperationRepository() *MemoryOperationRepository {
	return &MemoryOperationRepository{operations: make(map[string][]*models.Operation)}
}

func (r *MemoryOperationRepository) SaveOperation(op *models.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if op.ID.IsZero() {
		op.ID = primitive.NewObjectID()
	}
	copied := *op
	r.operations[op.Email] = append(r.operations[op.Email], &copied)
	return nil
}

func (r *MemoryOperationRepository) GetOperationsByEmail(email string) ([]*models.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.operations[email]
	operations := make([]*models.Operation, 0, len(stored))
	for _, op := range stored {
		copied := *op
		operations = append(operations, &copied)
	}
	sort.Slice(operations, func(i, j int) bool {
		return operations[i].Timestamp.After(operations[j].Timestamp)
	})
	return operations, nil
}

func (r *MemoryOperationRepository) CountByEmail(email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.operations[email])), nil
}

type MemoryWithdrawalRepository struct {
	mu          sync.RWMutex
	withdrawals map[string][]*models.Withdrawal
}

func NewMemoryWithdrawalRepository() *MemoryWithdrawalRepository {
	return &MemoryWithdrawalRepository{withdrawals: make(map[string][]*models.Withdrawal)}
}

func (r *MemoryWithdrawalRepository) SaveWithdrawal(withdrawal *models.Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if withdrawal.ID.IsZero() {
		withdrawal.ID = primitive.NewObjectID()
	}
	copied := *withdrawal
	r.withdrawals[withdrawal.Email] = append(r.withdrawals[withdrawal.Email], &copied)
	return nil
}

func (r *MemoryWithdrawalRepository) GetWithdrawalsByEmail(email string) ([]*models.Withdrawal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.withdrawals[email]
	withdrawals := make([]*models.Withdrawal, 0, len(stored))
	for _, w := range stored {
		copied := *w
		withdrawals = append(withdrawals, &copied)
	}
	sort.Slice(withdrawals, func(i, j int) bool {
		return withdrawals[i].Timestamp.After(withdrawals[j].Timestamp)
	})
	return withdrawals, nil
}

type MemoryRescueRepository struct {
	mu      sync.RWMutex
	rescues map[string][]*models.InvestmentRescue
}

func NewMemoryRescueRepository() *MemoryRescueRepository {
	return &MemoryRescueRepository{rescues: make(map[string][]*models.InvestmentRescue)}
}

func (r *MemoryRescueRepository) SaveRescue(rescue *models.InvestmentRescue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rescue.ID.IsZero() {
		rescue.ID = primitive.NewObjectID()
	}
	copied := *rescue
	r.rescues[rescue.Email] = append(r.rescues[rescue.Email], &copied)
	return nil
}

func (r *MemoryRescueRepository) GetRescuesByEmail(email string) ([]*models.InvestmentRescue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.rescues[email]
	rescues := make([]*models.InvestmentRescue, 0, len(stored))
	for _, rescue := range stored {
		copied := *rescue
		rescues = append(rescues, &copied)
	}
	sort.Slice(rescues, func(i, j int) bool {
		return rescues[i].Timestamp.After(rescues[j].Timestamp)
	})
	return rescues, nil
}

type MemoryProofRepository struct {
	mu     sync.RWMutex
	hashes map[string]map[string]bool
}

func NewMemoryProofRepository() *MemoryProofRepository {
	return &MemoryProofRepository{hashes: make(map[string]map[string]bool)}
}

func (r *MemoryProofRepository) HasHash(email, hash string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.hashes[email][hash], nil
}

func (r *MemoryProofRepository) AddHash(email, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hashes[email] == nil {
		r.hashes[email] = make(map[string]bool)
	}
	r.hashes[email][hash] = true
	return nil
}

type MemoryLogRepository struct {
	mu      sync.RWMutex
	entries []*models.LogEntry
}

func NewMemoryLogRepository() *MemoryLogRepository {
	return &MemoryLogRepository{}
}

func (r *MemoryLogRepository) SaveLog(entry *models.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *MemoryLogRepository) GetAllLogs(page, limit int) ([]*models.LogEntry, error) {
	return r.pageLogs(func(*models.LogEntry) bool { return true }, page, limit)
}

func (r *MemoryLogRepository) GetLogsByEmail(email string, page, limit int) ([]*models.LogEntry, error) {
	return r.pageLogs(func(e *models.LogEntry) bool { return e.Email == email }, page, limit)
}

func (r *MemoryLogRepository) pageLogs(match func(*models.LogEntry) bool, page, limit int) ([]*models.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	var matched []*models.LogEntry
	for _, entry := range r.entries {
		if match(entry) {
			copied := *entry
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}
