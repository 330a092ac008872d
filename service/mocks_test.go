// file: service/mocks_test.go

package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"account-opening-api/config"
	"account-opening-api/model"
	"account-opening-api/repository"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

func defaultRules() *config.AccountRules {
	rules, err := config.NewAccountRules(config.DefaultAccountsConfig())
	if err != nil {
		panic(err)
	}
	return rules
}

func intPtr(v int) *int { return &v }

// mockAccountRepo is a mock implementation of IAccountRepository.
type mockAccountRepo struct{ mock.Mock }

func (m *mockAccountRepo) LockAccountCreation(ctx context.Context, tx *sql.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockAccountRepo) GetAccountByCustomerAndType(ctx context.Context, tx *sql.Tx, customerID string, accountType model.AccountType) (*model.Account, error) {
	args := m.Called(ctx, tx, customerID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *mockAccountRepo) GetLastAccountID(ctx context.Context, tx *sql.Tx) (int64, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountRepo) CreateAccount(ctx context.Context, tx *sql.Tx, account *model.Account) error {
	return m.Called(ctx, tx, account).Error(0)
}

func (m *mockAccountRepo) GetAccountByNumber(ctx context.Context, accountNumber string) (*model.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *mockAccountRepo) GetAccountsByCustomerID(ctx context.Context, customerID string) ([]*model.Account, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}

// mockCache is a mock ICacheClient.
type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return m.Called(ctx, key).Get(0).(*redis.StringCmd)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return m.Called(ctx, key, value, expiration).Get(0).(*redis.StatusCmd)
}

func (m *mockCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	return m.Called(ctx, key).Get(0).(*redis.IntCmd)
}

// memoryCache is a map-backed ICacheClient. Expiration is ignored.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	default:
		c.values[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (c *memoryCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, body interface{}) error {
	return m.Called(ctx, routingKey, body).Error(0)
}

func (m *mockPublisher) Close() {}

// memoryRepo is an in-memory store enforcing the same unique constraints as the
// database schema. It ignores the transaction handle.
type memoryRepo struct {
	mu       sync.Mutex
	accounts []*model.Account
	nextID   int64
}

var _ repository.IAccountRepository = (*memoryRepo)(nil)

func (r *memoryRepo) LockAccountCreation(ctx context.Context, tx *sql.Tx) error { return nil }

func (r *memoryRepo) GetAccountByCustomerAndType(ctx context.Context, tx *sql.Tx, customerID string, accountType model.AccountType) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.CustomerID == customerID && a.AccountType == accountType {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryRepo) GetLastAccountID(ctx context.Context, tx *sql.Tx) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var max int64
	for _, a := range r.accounts {
		if a.ID > max {
			max = a.ID
		}
	}
	return max, nil
}

func (r *memoryRepo) CreateAccount(ctx context.Context, tx *sql.Tx, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.AccountNumber == account.AccountNumber {
			return &pq.Error{Code: "23505", Constraint: repository.ConstraintAccountNumber}
		}
		if a.CustomerID == account.CustomerID && a.AccountType == account.AccountType {
			return &pq.Error{Code: "23505", Constraint: repository.ConstraintCustomerAndType}
		}
	}
	r.nextID++
	account.ID = r.nextID
	account.CreatedAt = time.Now().UTC()
	stored := *account
	r.accounts = append(r.accounts, &stored)
	return nil
}

func (r *memoryRepo) GetAccountByNumber(ctx context.Context, accountNumber string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.AccountNumber == accountNumber {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryRepo) GetAccountsByCustomerID(ctx context.Context, customerID string) ([]*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Account
	for _, a := range r.accounts {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memoryRepo) count(customerID string, accountType model.AccountType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.accounts {
		if a.CustomerID == customerID && a.AccountType == accountType {
			n++
		}
	}
	return n
}
