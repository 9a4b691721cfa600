package errors

import (
	"github.com/muhammadheryan/contacts/constant"
	"github.com/muhammadheryan/contacts/model"
)

type CustomError struct {
	errType constant.ErrorType
	fields  []model.FieldError
	detail  string
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

// FieldErrors returns the violated validation rules, if any.
func (c CustomError) FieldErrors() []model.FieldError {
	return c.fields
}

// Detail returns the underlying diagnostic message. It must only be exposed in development.
func (c CustomError) Detail() string {
	return c.detail
}

// WithFieldErrors attaches validation failures.
func (c CustomError) WithFieldErrors(fields []model.FieldError) CustomError {
	c.fields = fields
	return c
}

// WithDetail attaches the diagnostic message of err.
func (c CustomError) WithDetail(err error) CustomError {
	if err != nil {
		c.detail = err.Error()
	}
	return c
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}
