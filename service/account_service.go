// file: service/account_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"account-opening-api/config"
	"account-opening-api/events"
	"account-opening-api/logger"
	"account-opening-api/model"
	"account-opening-api/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// postCommitTimeout bounds cache invalidation and event publishing after commit.
const postCommitTimeout = 5 * time.Second

// AccountService opens accounts and serves account reads.
type AccountService struct {
	db        *sql.DB
	repo      repository.IAccountRepository
	validator *DepositValidator
	numbers   *AccountNumberGenerator
	cache     ICacheClient
	publisher events.Publisher
}

// NewAccountService wires the service. cache and publisher may be nil, in which
// case caching is skipped and events are only logged.
func NewAccountService(db *sql.DB, repo repository.IAccountRepository, rules *config.AccountRules, cache ICacheClient, publisher events.Publisher) *AccountService {
	if cache == nil {
		cache = nopCache{}
	}
	if publisher == nil {
		publisher = events.NewLogPublisher()
	}
	return &AccountService{
		db:        db,
		repo:      repo,
		validator: NewDepositValidator(rules),
		numbers:   NewAccountNumberGenerator(rules),
		cache:     cache,
		publisher: publisher,
	}
}

// CreateAccount runs the duplicate guard, the deposit rules and numbering, then
// inserts the account, all in one transaction holding the account creation lock.
func (s *AccountService) CreateAccount(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":     req.CustomerID,
		"account_type":    req.AccountType,
		"initial_deposit": req.InitialDeposit.String(),
		"currency":        req.Currency,
	})
	log.Info("Starting account creation")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &PersistenceError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	if err := s.repo.LockAccountCreation(ctx, tx); err != nil {
		return nil, &PersistenceError{Op: "lock account creation", Err: err}
	}

	if err := EnsureNoExisting(ctx, s.repo, tx, req.CustomerID, req.AccountType); err != nil {
		log.WithError(err).Warn("Account creation rejected by duplicate guard")
		return nil, err
	}

	dc := DepositContext{MaturityMonths: req.MaturityMonths}
	if err := s.validator.Validate(req.AccountType, req.InitialDeposit, dc); err != nil {
		log.WithError(err).Warn("Account creation rejected by deposit rules")
		return nil, err
	}

	seq, err := NextSequence(ctx, s.repo, tx)
	if err != nil {
		return nil, &PersistenceError{Op: "allocate sequence", Err: err}
	}

	account := &model.Account{
		AccountNumber: s.numbers.Generate(req.AccountType, seq),
		CustomerID:    req.CustomerID,
		AccountType:   req.AccountType,
		Balance:       req.InitialDeposit,
		Currency:      req.Currency,
		ExtraData:     buildExtraData(req),
	}

	if err := s.repo.CreateAccount(ctx, tx, account); err != nil {
		if constraint, ok := repository.UniqueViolation(err); ok {
			return nil, conflictFromConstraint(constraint, req)
		}
		return nil, &PersistenceError{Op: "create account", Err: err}
	}

	if err := tx.Commit(); err != nil {
		if constraint, ok := repository.UniqueViolation(err); ok {
			return nil, conflictFromConstraint(constraint, req)
		}
		return nil, &PersistenceError{Op: "commit transaction", Err: err}
	}

	log.WithFields(logrus.Fields{
		"account_id":     account.ID,
		"account_number": account.AccountNumber,
	}).Info("Account created successfully")

	s.afterCreate(ctx, account)
	return account, nil
}

func buildExtraData(req model.CreateAccountRequest) model.ExtraData {
	if req.AccountType != model.AccountTypeFixedDeposit || req.MaturityMonths == nil {
		return nil
	}
	return model.ExtraData{"maturity_months": *req.MaturityMonths}
}

func conflictFromConstraint(constraint string, req model.CreateAccountRequest) *ConflictError {
	field := "account_type"
	if constraint == repository.ConstraintAccountNumber {
		field = "account_number"
	}
	return &ConflictError{Field: field, CustomerID: req.CustomerID, AccountType: req.AccountType}
}

// afterCreate runs once the account is committed. Its failures are logged only:
// the account exists regardless. It is detached from the request context so a
// client disconnecting after commit does not drop the event.
func (s *AccountService) afterCreate(ctx context.Context, account *model.Account) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), postCommitTimeout)
	defer cancel()

	log := logger.Log.WithField("account_number", account.AccountNumber)

	if err := s.cache.Incr(ctx, customerGenerationKey(account.CustomerID)).Err(); err != nil {
		log.WithError(err).Warn("Failed to invalidate customer accounts cache")
	}

	if err := s.publisher.Publish(ctx, events.AccountCreated, model.NewAccountResponse(account)); err != nil {
		log.WithError(err).Warn("Failed to publish account created event")
	}
}

// GetAccountByNumber looks the account up through the cache.
func (s *AccountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*model.Account, error) {
	key := accountCacheKey(accountNumber)
	log := logger.Log.WithField("account_number", accountNumber)

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var account model.Account
		if err := json.Unmarshal([]byte(cached), &account); err == nil {
			return &account, nil
		}
		log.Warn("Discarding undecodable cached account")
	}

	account, err := s.repo.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, &PersistenceError{Op: "get account by number", Err: err}
	}

	s.store(ctx, key, account)
	return account, nil
}

// ListAccountsForCustomer returns every account of the customer, using a cache-aside strategy.
func (s *AccountService) ListAccountsForCustomer(ctx context.Context, customerID string) ([]*model.Account, error) {
	generation, err := s.cache.Get(ctx, customerGenerationKey(customerID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		generation = "0"
	case err != nil:
		// Without a generation no key is safe to read or fill.
		logger.Log.WithError(err).WithField("customer_id", customerID).Warn("Failed to read cache generation")
		return s.listFromStore(ctx, customerID)
	}
	key := customerAccountsCacheKey(customerID, generation)

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var accounts []*model.Account
		if err := json.Unmarshal([]byte(cached), &accounts); err == nil {
			return accounts, nil
		}
	}

	accounts, err := s.listFromStore(ctx, customerID)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, accounts)
	return accounts, nil
}

func (s *AccountService) listFromStore(ctx context.Context, customerID string) ([]*model.Account, error) {
	accounts, err := s.repo.GetAccountsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, &PersistenceError{Op: "list accounts by customer", Err: err}
	}
	return accounts, nil
}

func (s *AccountService) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, accountCacheTTL).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("Failed to write cache")
	}
}
