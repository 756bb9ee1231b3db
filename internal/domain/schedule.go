package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// ScheduledPayment is one expected disbursement of a plan. All rows are created
// with the plan; afterwards only status, processed date, retry bookkeeping and
// the external check reference mutate.
type ScheduledPayment struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	PlanID           uuid.UUID       `json:"planId" db:"plan_id"`
	SequenceNumber   int             `json:"sequenceNumber" db:"sequence_number"`
	ScheduledDate    time.Time       `json:"scheduledDate" db:"scheduled_date"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	IsUpfrontPayment bool            `json:"isUpfrontPayment" db:"is_upfront_payment"`
	Status           string          `json:"status" db:"status"`
	ProcessedDate    *time.Time      `json:"processedDate,omitempty" db:"processed_date"`
	RetryCount       int             `json:"retryCount" db:"retry_count"`
	FailureReason    *string         `json:"failureReason,omitempty" db:"failure_reason"`
	ExternalCheckID  *string         `json:"externalCheckId,omitempty" db:"external_check_id"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
}

// IsTerminalFor reports whether the row can no longer leave its state given
// the configured retry limit. Completed and cancelled rows are always terminal;
// a failed row is terminal once its retries are exhausted.
func (s *ScheduledPayment) IsTerminalFor(maxRetries int) bool {
	switch s.Status {
	case PaymentStatusCompleted, PaymentStatusCancelled:
		return true
	case PaymentStatusFailed:
		return s.RetryCount >= maxRetries
	default:
		return false
	}
}

// ScheduleSummary aggregates a plan's schedule for the polling read path.
type ScheduleSummary struct {
	TotalPayments     int        `json:"totalPayments"`
	CompletedPayments int        `json:"completedPayments"`
	PendingPayments   int        `json:"pendingPayments"`
	FailedPayments    int        `json:"failedPayments"`
	NextPaymentDate   *time.Time `json:"nextPaymentDate,omitempty"`
}

type ScheduleResponse struct {
	Summary  ScheduleSummary     `json:"summary"`
	Schedule []*ScheduledPayment `json:"schedule"`
}

// Summarize computes the schedule summary from its rows. Cancelled rows count
// as neither pending nor failed; they only contribute to the total.
func Summarize(schedule []*ScheduledPayment) ScheduleSummary {
	summary := ScheduleSummary{TotalPayments: len(schedule)}

	for _, payment := range schedule {
		switch payment.Status {
		case PaymentStatusCompleted:
			summary.CompletedPayments++
		case PaymentStatusPending:
			summary.PendingPayments++
			if summary.NextPaymentDate == nil || payment.ScheduledDate.Before(*summary.NextPaymentDate) {
				date := payment.ScheduledDate
				summary.NextPaymentDate = &date
			}
		case PaymentStatusFailed:
			summary.FailedPayments++
		}
	}

	return summary
}

// PaymentOutcomeRequest reports one disbursement attempt's result from the
// payment executor.
type PaymentOutcomeRequest struct {
	Status          string     `json:"status" validate:"required,oneof=completed failed"`
	FailureReason   string     `json:"failureReason"`
	ExternalCheckID string     `json:"externalCheckId"`
	ProcessedDate   *time.Time `json:"processedDate"`
}
