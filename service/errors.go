// file: service/errors.go

package service

import (
	"errors"
	"fmt"

	"account-opening-api/model"

	"github.com/shopspring/decimal"
)

var ErrAccountNotFound = errors.New("account not found")

// InsufficientDepositError is returned when the initial deposit is below the
// configured minimum for the account type.
type InsufficientDepositError struct {
	AccountType model.AccountType
	Deposit     decimal.Decimal
	Minimum     decimal.Decimal
}

func (e *InsufficientDepositError) Error() string {
	return fmt.Sprintf("Initial deposit of %s is below the minimum required amount of %s for a %s account.",
		e.Deposit.StringFixed(2), e.Minimum.StringFixed(2), e.AccountType.Label())
}

// MissingMaturityError is returned for fd requests without a positive maturity_months.
type MissingMaturityError struct {
	AccountType model.AccountType
}

func (e *MissingMaturityError) Error() string {
	return "FD accounts require maturity_months (minimum 1 month)."
}

// ConflictError is returned when creating the account would violate a uniqueness rule.
// Field names the conflicting attribute: "account_type" for a duplicate
// customer/type pair, "account_number" for a numbering collision.
type ConflictError struct {
	Field       string
	CustomerID  string
	AccountType model.AccountType
}

func (e *ConflictError) Error() string {
	if e.Field == "account_number" {
		return "An account with the generated account number already exists."
	}
	return "An account of this type already exists for this customer."
}

// PersistenceError wraps a store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
