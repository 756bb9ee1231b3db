package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrPlanNotFound          = errors.New("payment plan not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrInvalidPrincipal      = errors.New("principal amount must be greater than zero")
	ErrInvalidUpfrontPayment = errors.New("upfront payment must be less than the principal amount")
	ErrUnknownDuration       = errors.New("duration is not in the plan catalog")
	ErrPlanNotActive         = errors.New("payment plan is not active")
	ErrPaymentNotFound       = errors.New("scheduled payment not found")
	ErrPaymentAlreadyFinal   = errors.New("scheduled payment is already in a terminal state")
	ErrRetryLimitReached     = errors.New("scheduled payment has reached the retry limit")
	ErrProcessorDeclined     = errors.New("payment processor declined the check")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodePlanNotFound       = "PLAN_NOT_FOUND"
	ErrCodeCustomerNotFound   = "CUSTOMER_NOT_FOUND"
	ErrCodeInvalidPlanState   = "INVALID_PLAN_STATE"
	ErrCodePaymentNotFound    = "PAYMENT_NOT_FOUND"
	ErrCodePaymentAlreadyDone = "PAYMENT_ALREADY_PROCESSED"
	ErrCodeRetryLimitReached  = "RETRY_LIMIT_REACHED"
	ErrCodeProcessorDeclined  = "PROCESSOR_DECLINED"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
)

// HTTPStatus maps an error to the HTTP status handlers should respond with.
func HTTPStatus(err error) int {
	var be *BusinessError
	if !errors.As(err, &be) {
		return http.StatusInternalServerError
	}

	switch be.Code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodePlanNotFound, ErrCodeCustomerNotFound, ErrCodePaymentNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidPlanState, ErrCodePaymentAlreadyDone, ErrCodeRetryLimitReached:
		return http.StatusConflict
	case ErrCodeProcessorDeclined:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// Wrap common errors with business context
func WrapValidationError(message string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidationFailed,
		message,
		err,
	)
}

func WrapPlanNotFound(planID string) *BusinessError {
	return NewBusinessError(
		ErrCodePlanNotFound,
		fmt.Sprintf("Payment plan with ID %s not found", planID),
		ErrPlanNotFound,
	)
}

func WrapCustomerNotFound(customerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCustomerNotFound,
		fmt.Sprintf("Customer with ID %s not found", customerID),
		ErrCustomerNotFound,
	)
}

func WrapPlanNotActive(planID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPlanState,
		fmt.Sprintf("Payment plan %s is %s, not active", planID, status),
		ErrPlanNotActive,
	)
}

func WrapPaymentNotFound(planID string, sequenceNumber int) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment #%d of plan %s not found", sequenceNumber, planID),
		ErrPaymentNotFound,
	)
}

func WrapPaymentAlreadyFinal(planID string, sequenceNumber int, status string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentAlreadyDone,
		fmt.Sprintf("Payment #%d of plan %s is already %s", sequenceNumber, planID, status),
		ErrPaymentAlreadyFinal,
	)
}

func WrapRetryLimitReached(planID string, sequenceNumber, retries int) *BusinessError {
	return NewBusinessError(
		ErrCodeRetryLimitReached,
		fmt.Sprintf("Payment #%d of plan %s failed %d times and cannot be retried", sequenceNumber, planID, retries),
		ErrRetryLimitReached,
	)
}

func WrapProcessorDeclined(description string) *BusinessError {
	return NewBusinessError(
		ErrCodeProcessorDeclined,
		fmt.Sprintf("Payment processor declined the check: %s", description),
		ErrProcessorDeclined,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"Database operation failed",
		err,
	)
}
