package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"account-opening-api/common"
	"account-opening-api/logger"
	"account-opening-api/model"
	"account-opening-api/service"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// AccountService is the part of service.AccountService the handlers need.
type AccountService interface {
	CreateAccount(ctx context.Context, req model.CreateAccountRequest) (*model.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*model.Account, error)
	ListAccountsForCustomer(ctx context.Context, customerID string) ([]*model.Account, error)
}

type AccountHandler struct {
	service AccountService
}

func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccount godoc
// @Summary      Open a new account
// @Description  Opens a savings, current or fixed deposit account for a customer.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        account  body      model.CreateAccountRequest  true  "Account to open"
// @Success      201      {object}  model.AccountResponse
// @Failure      400      {object}  common.AppError
// @Failure      409      {object}  common.AppError
// @Failure      422      {object}  common.AppError
// @Failure      500      {object}  common.AppError
// @Router       /api/v1/accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateAccountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	logger.Log.WithFields(logrus.Fields{
		"customer_id":  req.CustomerID,
		"account_type": req.AccountType,
	}).Info("Create account request received")

	account, err := h.service.CreateAccount(r.Context(), req)
	if err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusCreated, model.NewAccountResponse(account))
	return nil
}

// GetAccount godoc
// @Summary      Get an account
// @Description  Returns the account with the given account number.
// @Tags         accounts
// @Produce      json
// @Param        accountNumber  path      string  true  "Account number"  example(SB-0000000001)
// @Success      200            {object}  model.AccountResponse
// @Failure      404            {object}  common.AppError
// @Failure      500            {object}  common.AppError
// @Router       /api/v1/accounts/{accountNumber} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountNumber := chi.URLParam(r, "accountNumber")

	account, err := h.service.GetAccountByNumber(r.Context(), accountNumber)
	if err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, model.NewAccountResponse(account))
	return nil
}

// ListCustomerAccounts godoc
// @Summary      List a customer's accounts
// @Tags         accounts
// @Produce      json
// @Param        customerID  path      string  true  "Customer ID"
// @Success      200         {array}   model.AccountResponse
// @Failure      500         {object}  common.AppError
// @Router       /api/v1/customers/{customerID}/accounts [get]
func (h *AccountHandler) ListCustomerAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	customerID := chi.URLParam(r, "customerID")

	accounts, err := h.service.ListAccountsForCustomer(r.Context(), customerID)
	if err != nil {
		return toAppError(err)
	}

	writeJSON(w, http.StatusOK, model.NewAccountResponses(accounts))
	return nil
}

// toAppError maps service errors to HTTP responses.
func toAppError(err error) *common.AppError {
	var (
		insufficient *service.InsufficientDepositError
		maturity     *service.MissingMaturityError
		conflict     *service.ConflictError
	)

	switch {
	case errors.As(err, &insufficient):
		return common.NewAppError(http.StatusBadRequest, insufficient.Error(), nil).WithDetails(map[string]interface{}{
			"account_type":    insufficient.AccountType,
			"minimum_deposit": insufficient.Minimum.StringFixed(2),
		})
	case errors.As(err, &maturity):
		return common.NewAppError(http.StatusBadRequest, maturity.Error(), nil).WithDetails(map[string]interface{}{
			"field": "maturity_months",
		})
	case errors.As(err, &conflict):
		return common.NewAppError(http.StatusConflict, conflict.Error(), nil).WithDetails(map[string]interface{}{
			"field": conflict.Field,
		})
	case errors.Is(err, service.ErrAccountNotFound):
		return common.NewAppError(http.StatusNotFound, "Account not found", nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Could not process account request", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
