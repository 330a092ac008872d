package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the kind of account a customer can open.
type AccountType string

const (
	AccountTypeSavings      AccountType = "savings"
	AccountTypeCurrent      AccountType = "current"
	AccountTypeFixedDeposit AccountType = "fd"
)

// AccountTypes lists every supported account type.
var AccountTypes = []AccountType{AccountTypeSavings, AccountTypeCurrent, AccountTypeFixedDeposit}

func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeCurrent, AccountTypeFixedDeposit:
		return true
	}
	return false
}

// Label is the human readable name used in error messages.
func (t AccountType) Label() string {
	if t == AccountTypeFixedDeposit {
		return "fixed deposit"
	}
	return string(t)
}

// ExtraData is free-form account metadata stored as JSONB.
type ExtraData map[string]interface{}

// Value stores an empty ExtraData as NULL.
func (e ExtraData) Value() (driver.Value, error) {
	if len(e) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (e *ExtraData) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*e = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ExtraData", src)
	}

	var data ExtraData
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}
	*e = data
	return nil
}

type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"account_number"`
	CustomerID    string          `json:"customer_id"`
	AccountType   AccountType     `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	ExtraData     ExtraData       `json:"extra_data"`
	CreatedAt     time.Time       `json:"created_at"`
}
