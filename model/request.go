// file: model/request.go

package model

import "github.com/shopspring/decimal"

// DefaultCurrency is applied when a creation request omits the currency.
const DefaultCurrency = "INR"

// CreateAccountRequest defines the payload for opening a new account.
// Shape rules live in the validate tags; business rules are checked by the service.
type CreateAccountRequest struct {
	CustomerID     string          `json:"customer_id" validate:"required,min=5,max=50" example:"CUST00001"`
	AccountType    AccountType     `json:"account_type" validate:"required,oneof=savings current fd" example:"savings"`
	InitialDeposit decimal.Decimal `json:"initial_deposit" validate:"required,money" swaggertype:"string" example:"500.00"`
	Currency       string          `json:"currency" validate:"required,len=3" example:"INR"`
	// MaturityMonths is only meaningful for fd accounts.
	MaturityMonths *int `json:"maturity_months,omitempty" example:"12"`
}

// ApplyDefaults fills optional fields before validation.
func (r *CreateAccountRequest) ApplyDefaults() {
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
}
