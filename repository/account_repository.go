package repository

import (
	"context"
	"database/sql"
	"errors"

	"account-opening-api/logger"
	"account-opening-api/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// accountCreationLockKey identifies the advisory lock that serializes account creation.
const accountCreationLockKey int64 = 7340211

const uniqueViolation = pq.ErrorCode("23505")

// Constraint names from db/migrations.
const (
	ConstraintAccountNumber   = "accounts_account_number_key"
	ConstraintCustomerAndType = "accounts_customer_id_account_type_key"
)

const accountColumns = `id, account_number, customer_id, account_type, balance, currency, extra_data, created_at`

// IAccountRepository defines the contract for account database operations.
// Methods taking a *sql.Tx run inside the caller's transaction.
type IAccountRepository interface {
	LockAccountCreation(ctx context.Context, tx *sql.Tx) error
	GetAccountByCustomerAndType(ctx context.Context, tx *sql.Tx, customerID string, accountType model.AccountType) (*model.Account, error)
	GetLastAccountID(ctx context.Context, tx *sql.Tx) (int64, error)
	CreateAccount(ctx context.Context, tx *sql.Tx, account *model.Account) error
	GetAccountByNumber(ctx context.Context, accountNumber string) (*model.Account, error)
	GetAccountsByCustomerID(ctx context.Context, customerID string) ([]*model.Account, error)
}

// AccountRepository implements IAccountRepository on PostgreSQL.
type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var acc model.Account
	err := row.Scan(&acc.ID, &acc.AccountNumber, &acc.CustomerID, &acc.AccountType,
		&acc.Balance, &acc.Currency, &acc.ExtraData, &acc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// LockAccountCreation takes a transaction-scoped advisory lock. It is released on
// commit or rollback.
func (r *AccountRepository) LockAccountCreation(ctx context.Context, tx *sql.Tx) error {
	logger.Log.Debug("Acquiring account creation lock")

	_, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, accountCreationLockKey)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to acquire account creation lock")
		return err
	}
	return nil
}

// GetAccountByCustomerAndType returns sql.ErrNoRows when the customer has no account of that type.
func (r *AccountRepository) GetAccountByCustomerAndType(ctx context.Context, tx *sql.Tx, customerID string, accountType model.AccountType) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":  customerID,
		"account_type": accountType,
	})
	log.Info("Executing query to get account by customer and type")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 AND account_type = $2`
	account, err := scanAccount(tx.QueryRowContext(ctx, query, customerID, accountType))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.WithError(err).Error("Failed to execute get account by customer and type query")
		}
		return nil, err
	}
	return account, nil
}

// GetLastAccountID returns the highest account id, or 0 when there are no accounts.
func (r *AccountRepository) GetLastAccountID(ctx context.Context, tx *sql.Tx) (int64, error) {
	logger.Log.Info("Executing query to get last account id")

	var lastID int64
	err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM accounts`).Scan(&lastID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get last account id query")
		return 0, err
	}
	return lastID, nil
}

// CreateAccount inserts the account and fills in its id and created_at.
func (r *AccountRepository) CreateAccount(ctx context.Context, tx *sql.Tx, account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"customer_id":    account.CustomerID,
		"account_type":   account.AccountType,
		"account_number": account.AccountNumber,
		"currency":       account.Currency,
	})
	log.Info("Executing query to create a new account")

	query := `INSERT INTO accounts (account_number, customer_id, account_type, balance, currency, extra_data)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := tx.QueryRowContext(ctx, query,
		account.AccountNumber,
		account.CustomerID,
		account.AccountType,
		account.Balance,
		account.Currency,
		account.ExtraData,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if constraint, ok := UniqueViolation(err); ok {
			log.WithField("constraint", constraint).Warn("Create account rejected by unique constraint")
			return err
		}
		log.WithError(err).Error("Failed to execute create account query")
		return err
	}
	return nil
}

// GetAccountByNumber returns sql.ErrNoRows when the account does not exist.
func (r *AccountRepository) GetAccountByNumber(ctx context.Context, accountNumber string) (*model.Account, error) {
	log := logger.Log.WithField("account_number", accountNumber)
	log.Info("Executing query to get account by number")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_number = $1`
	account, err := scanAccount(r.DB.QueryRowContext(ctx, query, accountNumber))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.WithError(err).Error("Failed to execute get account by number query")
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByCustomerID retrieves all accounts of a customer, oldest first.
func (r *AccountRepository) GetAccountsByCustomerID(ctx context.Context, customerID string) ([]*model.Account, error) {
	log := logger.Log.WithField("customer_id", customerID)
	log.Info("Executing query to get accounts by customer ID")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, customerID)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for accounts by customer ID")
		return nil, err
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed iterating account rows")
		return nil, err
	}
	return accounts, nil
}

// UniqueViolation reports whether err is a PostgreSQL unique violation and, if so,
// the name of the violated constraint.
func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}
