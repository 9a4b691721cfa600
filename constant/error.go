package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrValidation
	ErrEmailExists
	ErrRouteNotFound
	ErrForbidden
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:        "success",
	ErrInternal:       "An error occurred",
	ErrNotFound:       "User not found",
	ErrInvalidRequest: "invalid request",
	ErrValidation:     "Validation failed",
	ErrEmailExists:    "Email already exists",
	ErrRouteNotFound:  "Route not found",
	ErrForbidden:      "Forbidden",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:        http.StatusOK,
	ErrInternal:       http.StatusInternalServerError,
	ErrNotFound:       http.StatusNotFound,
	ErrInvalidRequest: http.StatusBadRequest,
	ErrValidation:     http.StatusBadRequest,
	ErrEmailExists:    http.StatusBadRequest,
	ErrRouteNotFound:  http.StatusNotFound,
	ErrForbidden:      http.StatusForbidden,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:        "0000",
	ErrInternal:       "0001",
	ErrNotFound:       "0002",
	ErrInvalidRequest: "0003",
	ErrValidation:     "0004",
	ErrEmailExists:    "0005",
	ErrRouteNotFound:  "0006",
	ErrForbidden:      "0007",
}
