package handler

import (
	"net/http"

	"account-opening-api/common"
)

// ErrorHandlingMiddleware adapts handlers that return *common.AppError.
func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}
