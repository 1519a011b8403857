package dto

import (
	"net/http"
	"strings"
)

// Error codes surfaced by the HTTP layer itself
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// domainErrorStatus maps domain error codes to HTTP status codes
var domainErrorStatus = map[string]int{
	"NOT_FOUND":                  http.StatusNotFound,
	"ALREADY_EXISTS":             http.StatusConflict,
	"CONCURRENCY_CONFLICT":       http.StatusConflict,
	"ALREADY_CHAINED":            http.StatusConflict,
	"CHAIN_PREDECESSOR_NOT_DONE": http.StatusUnprocessableEntity,
	"CHAIN_PREDECESSOR_REQUIRED": http.StatusUnprocessableEntity,
	"INVALID_STATE":              http.StatusUnprocessableEntity,
	"MAIN_STOCK_NOT_CONFIGURED":  http.StatusUnprocessableEntity,
	"BAD_REQUEST":                http.StatusBadRequest,
	"INTERNAL_ERROR":             http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation codes (INVALID_*) map to 400; unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
