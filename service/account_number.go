package service

import (
	"fmt"

	"account-opening-api/config"
	"account-opening-api/model"
)

// fallbackPrefix is used for account types without a configured prefix.
const fallbackPrefix = "GEN"

// AccountNumberGenerator renders account numbers as PREFIX-0000000001.
type AccountNumberGenerator struct {
	rules *config.AccountRules
}

func NewAccountNumberGenerator(rules *config.AccountRules) *AccountNumberGenerator {
	return &AccountNumberGenerator{rules: rules}
}

// Generate pads seq to 10 digits. Wider sequences are rendered in full.
func (g *AccountNumberGenerator) Generate(accountType model.AccountType, seq int64) string {
	prefix := g.rules.Prefix(accountType)
	if prefix == "" {
		prefix = fallbackPrefix
	}
	return fmt.Sprintf("%s-%010d", prefix, seq)
}
