package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentPlan is a candidate repayment plan produced by the calculator.
// Candidates are never persisted; one is selected and turned into a Plan.
type PaymentPlan struct {
	Duration        int             `json:"duration"`
	MonthlyPayment  decimal.Decimal `json:"monthlyPayment"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	InterestAmount  decimal.Decimal `json:"interestAmount"`
	UpfrontPayment  decimal.Decimal `json:"upfrontPayment"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Description     string          `json:"description"`
}

// IsPayInFull reports whether this is the duration-1 full payment option.
func (p PaymentPlan) IsPayInFull() bool {
	return p.Duration == 1
}

// PlansResponse wraps one calculation's context plus its candidate plans.
type PlansResponse struct {
	CustomerName    string          `json:"customerName"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	InterestRate    string          `json:"interestRate"`
	UpfrontPayment  decimal.Decimal `json:"upfrontPayment"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	AvailablePlans  []PaymentPlan   `json:"availablePlans"`
}

// DTOs for requests

type CalculateRequest struct {
	PrincipalAmount decimal.Decimal `json:"principalAmount" validate:"decimal_gt=0"`
	CustomerName    string          `json:"customerName" validate:"required"`
	UpfrontPayment  decimal.Decimal `json:"upfrontPayment" validate:"decimal_gte=0"`
}
