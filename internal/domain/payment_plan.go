package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PlanStatusPending   = "pending"
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusCancelled = "cancelled"
	PlanStatusDefaulted = "defaulted"
)

// Plan is a persisted payment plan created from a selected candidate.
// Once completed, cancelled or defaulted it no longer changes.
type Plan struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	CustomerID        uuid.UUID       `json:"customerId" db:"customer_id"`
	PrincipalAmount   decimal.Decimal `json:"principalAmount" db:"principal_amount"`
	InterestRate      decimal.Decimal `json:"interestRate" db:"interest_rate"`
	InterestAmount    decimal.Decimal `json:"interestAmount" db:"interest_amount"`
	TotalAmount       decimal.Decimal `json:"totalAmount" db:"total_amount"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment" db:"monthly_payment"`
	Duration          int             `json:"duration" db:"duration"`
	UpfrontPayment    decimal.Decimal `json:"upfrontPayment" db:"upfront_payment"`
	RemainingAmount   decimal.Decimal `json:"remainingAmount" db:"remaining_amount"`
	StartDate         time.Time       `json:"startDate" db:"start_date"`
	EndDate           time.Time       `json:"endDate" db:"end_date"`
	Status            string          `json:"status" db:"status"`
	TotalPayments     int             `json:"totalPayments" db:"total_payments"`
	CompletedPayments int             `json:"completedPayments" db:"completed_payments"`
	RemainingBalance  decimal.Decimal `json:"remainingBalance" db:"remaining_balance"`
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time       `json:"updatedAt" db:"updated_at"`
}

// IsTerminal reports whether the plan is in a state that no longer mutates.
func (p *Plan) IsTerminal() bool {
	return p.Status == PlanStatusCompleted ||
		p.Status == PlanStatusCancelled ||
		p.Status == PlanStatusDefaulted
}

// DTOs for requests and responses

type CreatePlanRequest struct {
	SelectedPlan   SelectedPlan   `json:"selectedPlan" validate:"required"`
	CustomerName   string         `json:"customerName" validate:"required"`
	Email          string         `json:"email" validate:"required,email"`
	Phone          string         `json:"phone" validate:"required"`
	PhoneExtension string         `json:"phoneExtension"`
	Address1       string         `json:"address1" validate:"required"`
	Address2       string         `json:"address2"`
	City           string         `json:"city" validate:"required"`
	State          string         `json:"state" validate:"required"`
	Zip            string         `json:"zip" validate:"required"`
	Country        string         `json:"country"`
	RoutingNumber  string         `json:"routingNumber" validate:"required,len=9,numeric"`
	AccountNumber  string         `json:"accountNumber" validate:"required"`
	BankName       string         `json:"bankName" validate:"required"`
	Documents      *DocumentsMeta `json:"documents"`
	StartDate      *time.Time     `json:"startDate"`
}

// SelectedPlan carries the candidate the customer picked. The engine re-derives
// the plan from the principal before persisting, so tampered amounts are rejected.
type SelectedPlan struct {
	Duration        int             `json:"duration" validate:"required,gte=1"`
	TotalAmount     decimal.Decimal `json:"totalAmount" validate:"decimal_gt=0"`
	MonthlyPayment  decimal.Decimal `json:"monthlyPayment" validate:"decimal_gt=0"`
	InterestAmount  decimal.Decimal `json:"interestAmount" validate:"decimal_gte=0"`
	UpfrontPayment  decimal.Decimal `json:"upfrontPayment" validate:"decimal_gte=0"`
	PrincipalAmount decimal.Decimal `json:"principalAmount" validate:"decimal_gt=0"`
}

type PlanDetailsSummary struct {
	PrincipalAmount  decimal.Decimal `json:"principalAmount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	MonthlyPayment   decimal.Decimal `json:"monthlyPayment"`
	Duration         int             `json:"duration"`
	InterestRate     string          `json:"interestRate"`
	InterestAmount   decimal.Decimal `json:"interestAmount"`
	UpfrontPayment   decimal.Decimal `json:"upfrontPayment"`
	RemainingAmount  decimal.Decimal `json:"remainingAmount"`
	FirstPaymentDate time.Time       `json:"firstPaymentDate"`
	LastPaymentDate  time.Time       `json:"lastPaymentDate"`
}

// CreatePlanResult is the payload returned after a plan is created and its
// first payment submitted to the processor.
type CreatePlanResult struct {
	PaymentPlanID string             `json:"paymentPlanId"`
	CustomerID    string             `json:"customerId"`
	PlanDetails   PlanDetailsSummary `json:"planDetails"`
	FirstPayment  *FirstPaymentInfo  `json:"firstPayment,omitempty"`
	Message       string             `json:"message"`
}

type FirstPaymentInfo struct {
	Success         bool            `json:"success"`
	ProcessorResult *CheckResult    `json:"processorResponse,omitempty"`
	SequenceNumber  int             `json:"sequenceNumber"`
	Amount          decimal.Decimal `json:"amount"`
}

// DeclineDetails is surfaced when the processor rejects the first payment.
// The raw processor response is passed through untranslated for diagnosis.
type DeclineDetails struct {
	Reason            string       `json:"reason"`
	Message           string       `json:"message"`
	Suggestions       []string     `json:"suggestions"`
	ProcessorResponse *CheckResult `json:"externalProcessorResponse,omitempty"`
}

// CheckResult mirrors the eCheck processor's raw response fields.
type CheckResult struct {
	Result                  string `json:"result"`
	ResultDescription       string `json:"resultDescription"`
	VerifyResult            string `json:"verifyResult"`
	VerifyResultDescription string `json:"verifyResultDescription"`
	CheckNumber             string `json:"checkNumber"`
	CheckID                 string `json:"checkId"`
}

// Approved reports whether the processor accepted the check. The processor
// uses "0" for success.
func (r *CheckResult) Approved() bool {
	return r != nil && r.Result == "0"
}

// PlanWithCustomer is the details-endpoint aggregate.
type PlanWithCustomer struct {
	Plan     *Plan     `json:"paymentPlan"`
	Customer *Customer `json:"customer"`
}

type PlanDetailsResponse struct {
	PaymentPlan     *PlanWithCustomer   `json:"paymentPlan"`
	PaymentSchedule []*ScheduledPayment `json:"paymentSchedule"`
}

// Pagination is the admin listing page descriptor.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type PlanListResponse struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Data       []*Plan    `json:"data"`
}
