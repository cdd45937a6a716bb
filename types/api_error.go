package types

import (
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidRequest    ErrorCode = "invalid_request"
	ErrorCodeOrderNotFound     ErrorCode = "order_not_found"
	ErrorCodeUserNotFound      ErrorCode = "user_not_found"
	ErrorCodeInvalidTransition ErrorCode = "invalid_order_transition"
	ErrorCodeOrderDelivered    ErrorCode = "order_already_delivered"
	ErrorCodeReferralCycle     ErrorCode = "referral_cycle"
	ErrorCodeInsufficientStock ErrorCode = "insufficient_stock"
	ErrorCodeQueryDataError    ErrorCode = "query_data_error"
	ErrorCodeUpdateDataError   ErrorCode = "update_data_error"
	ErrorCodePermissionDenied  ErrorCode = "permission_denied"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
)

// ApiError carries an error code and the HTTP status the controller should
// answer with. Model and service code return these so controllers stay thin.
type ApiError struct {
	Err        error
	Code       ErrorCode
	StatusCode int
	SkipLog    bool
}

func (e *ApiError) Error() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return e.Err.Error()
}

func (e *ApiError) Unwrap() error {
	return e.Err
}

type ErrOption func(*ApiError)

func ErrOptionWithSkipLog() ErrOption {
	return func(e *ApiError) {
		e.SkipLog = true
	}
}

func NewError(err error, code ErrorCode, opts ...ErrOption) *ApiError {
	return NewErrorWithStatusCode(err, code, http.StatusInternalServerError, opts...)
}

func NewErrorWithStatusCode(err error, code ErrorCode, statusCode int, opts ...ErrOption) *ApiError {
	apiErr := &ApiError{
		Err:        err,
		Code:       code,
		StatusCode: statusCode,
	}
	for _, opt := range opts {
		opt(apiErr)
	}
	return apiErr
}
