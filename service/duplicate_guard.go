package service

import (
	"context"
	"database/sql"
	"errors"

	"account-opening-api/model"
	"account-opening-api/repository"
)

// EnsureNoExisting fails with *ConflictError if the customer already holds an
// account of accountType.
func EnsureNoExisting(ctx context.Context, repo repository.IAccountRepository, tx *sql.Tx, customerID string, accountType model.AccountType) error {
	_, err := repo.GetAccountByCustomerAndType(ctx, tx, customerID, accountType)
	switch {
	case err == nil:
		return &ConflictError{Field: "account_type", CustomerID: customerID, AccountType: accountType}
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return &PersistenceError{Op: "check existing account", Err: err}
	}
}
