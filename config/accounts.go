// file: config/accounts.go

package config

import (
	"fmt"

	"account-opening-api/model"

	"github.com/shopspring/decimal"
)

// AccountRule holds the tunables of one account type as they appear in config.
type AccountRule struct {
	MinDeposit string `mapstructure:"min_deposit"`
	Prefix     string `mapstructure:"prefix"`
}

type AccountsConfig struct {
	Savings AccountRule `mapstructure:"savings"`
	Current AccountRule `mapstructure:"current"`
	FD      AccountRule `mapstructure:"fd"`
}

type accountRule struct {
	minDeposit decimal.Decimal
	prefix     string
}

// AccountRules is the read-only, parsed view of AccountsConfig.
type AccountRules struct {
	rules map[model.AccountType]accountRule
}

// NewAccountRules parses and validates the per-type account settings.
func NewAccountRules(cfg AccountsConfig) (*AccountRules, error) {
	raw := map[model.AccountType]AccountRule{
		model.AccountTypeSavings:      cfg.Savings,
		model.AccountTypeCurrent:      cfg.Current,
		model.AccountTypeFixedDeposit: cfg.FD,
	}

	rules := make(map[model.AccountType]accountRule, len(raw))
	for t, r := range raw {
		minDeposit, err := decimal.NewFromString(r.MinDeposit)
		if err != nil {
			return nil, fmt.Errorf("accounts.%s.min_deposit: invalid decimal %q: %w", t, r.MinDeposit, err)
		}
		if minDeposit.IsNegative() {
			return nil, fmt.Errorf("accounts.%s.min_deposit: must not be negative", t)
		}
		if r.Prefix == "" {
			return nil, fmt.Errorf("accounts.%s.prefix: must not be empty", t)
		}
		rules[t] = accountRule{minDeposit: minDeposit, prefix: r.Prefix}
	}
	return &AccountRules{rules: rules}, nil
}

// MinimumDeposit returns zero for unknown account types.
func (r *AccountRules) MinimumDeposit(t model.AccountType) decimal.Decimal {
	return r.rules[t].minDeposit
}

// Prefix returns "" for unknown account types.
func (r *AccountRules) Prefix(t model.AccountType) string {
	return r.rules[t].prefix
}

// DefaultAccountsConfig mirrors the defaults applied by LoadConfig.
func DefaultAccountsConfig() AccountsConfig {
	return AccountsConfig{
		Savings: AccountRule{MinDeposit: "500.00", Prefix: "SB"},
		Current: AccountRule{MinDeposit: "1000.00", Prefix: "CR"},
		FD:      AccountRule{MinDeposit: "5000.00", Prefix: "FD"},
	}
}
