package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	BadRequest           ErrorCode = "BAD_REQUEST"
	NotFound             ErrorCode = "NOT_FOUND"
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	Forbidden            ErrorCode = "FORBIDDEN"
	PreconditionFailed   ErrorCode = "PRECONDITION_FAILED"
	TransferFailed       ErrorCode = "TRANSFER_FAILED"
	RequestTimeout       ErrorCode = "REQUEST_TIMEOUT"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error is the error returned across the service boundary. It carries the
// HTTP status and a stable code next to the underlying error.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		Err:        err,
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return &Error{
		Err:        errors.New(msg),
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		Err:        err,
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
	}
}

func NewValidationFailedError(err error) *Error {
	return &Error{
		Err:        err,
		StatusCode: http.StatusBadRequest,
		ErrorCode:  ValidationError,
	}
}

func NewPreconditionFailedError(err error) *Error {
	return NewError(http.StatusPreconditionFailed, PreconditionFailed, err)
}

func NewTransferFailedError(err error) *Error {
	return NewError(http.StatusBadGateway, TransferFailed, err)
}

func NewForbiddenError(err error) *Error {
	return NewError(http.StatusForbidden, Forbidden, err)
}
