// file: model/response.go

package model

import "time"

// AccountResponse is the wire shape of a created or fetched account.
// Balance is always rendered with two fraction digits.
type AccountResponse struct {
	ID            int64       `json:"id" example:"1"`
	AccountNumber string      `json:"account_number" example:"SB-0000000001"`
	CustomerID    string      `json:"customer_id" example:"CUST00001"`
	AccountType   AccountType `json:"account_type" example:"savings"`
	Balance       string      `json:"balance" example:"500.00"`
	Currency      string      `json:"currency" example:"INR"`
	CreatedAt     time.Time   `json:"created_at"`
	ExtraData     ExtraData   `json:"extra_data"`
}

// NewAccountResponse maps a persisted account to its response shape.
func NewAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		CustomerID:    a.CustomerID,
		AccountType:   a.AccountType,
		Balance:       a.Balance.StringFixed(2),
		Currency:      a.Currency,
		CreatedAt:     a.CreatedAt,
		ExtraData:     a.ExtraData,
	}
}

// NewAccountResponses maps a slice, never returning nil so it encodes as [].
func NewAccountResponses(accounts []*Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, NewAccountResponse(a))
	}
	return out
}
