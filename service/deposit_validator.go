package service

import (
	"account-opening-api/config"
	"account-opening-api/model"

	"github.com/shopspring/decimal"
)

// DepositContext carries the request fields the deposit rules depend on
// besides type and amount.
type DepositContext struct {
	MaturityMonths *int
}

// DepositValidator enforces the minimum deposit and fd maturity rules.
type DepositValidator struct {
	rules *config.AccountRules
}

func NewDepositValidator(rules *config.AccountRules) *DepositValidator {
	return &DepositValidator{rules: rules}
}

// Validate checks the minimum deposit first, then fd maturity.
func (v *DepositValidator) Validate(accountType model.AccountType, deposit decimal.Decimal, dc DepositContext) error {
	minimum := v.rules.MinimumDeposit(accountType)
	if deposit.LessThan(minimum) {
		return &InsufficientDepositError{
			AccountType: accountType,
			Deposit:     deposit,
			Minimum:     minimum,
		}
	}

	if accountType == model.AccountTypeFixedDeposit {
		if dc.MaturityMonths == nil || *dc.MaturityMonths < 1 {
			return &MissingMaturityError{AccountType: accountType}
		}
	}
	return nil
}
