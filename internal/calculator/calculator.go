package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paygrid/plan-engine/internal/domain"
	customError "github.com/paygrid/plan-engine/pkg/errors"
	"github.com/paygrid/plan-engine/pkg/utils"
)

// Calculator derives candidate repayment plans from a principal under a flat
// simple-interest policy. It is stateless: identical input yields identical
// output and calls are safe under unbounded concurrency.
type Calculator struct {
	interestRate decimal.Decimal
	durations    []int
}

func New(interestRate decimal.Decimal, durations []int) *Calculator {
	return &Calculator{
		interestRate: interestRate,
		durations:    durations,
	}
}

// InterestRate returns the flat rate this calculator applies.
func (c *Calculator) InterestRate() decimal.Decimal {
	return c.interestRate
}

// Durations returns the configured duration catalog.
func (c *Calculator) Durations() []int {
	return c.durations
}

// Calculate produces one candidate plan per configured duration.
//
// Duration 1 is the pay-in-full option: zero interest, total equal to the full
// principal regardless of any upfront split. Every other duration applies the
// flat rate to the remaining balance (principal minus upfront payment).
// Installment plans come first, ascending by duration; pay-in-full is last.
func (c *Calculator) Calculate(request *domain.CalculateRequest) (*domain.PlansResponse, error) {
	if err := c.validate(request); err != nil {
		return nil, err
	}

	principal := request.PrincipalAmount.Round(2)
	upfront := request.UpfrontPayment.Round(2)
	remaining := principal.Sub(upfront)

	installments := make([]domain.PaymentPlan, 0, len(c.durations))
	var payInFull []domain.PaymentPlan

	for _, duration := range c.durations {
		plan := c.buildPlan(duration, principal, upfront, remaining)
		if plan.IsPayInFull() {
			payInFull = append(payInFull, plan)
			continue
		}
		installments = append(installments, plan)
	}

	sort.Slice(installments, func(i, j int) bool {
		return installments[i].Duration < installments[j].Duration
	})
	plans := append(installments, payInFull...)

	return &domain.PlansResponse{
		CustomerName:    strings.TrimSpace(request.CustomerName),
		PrincipalAmount: principal,
		InterestRate:    c.interestRate.String(),
		UpfrontPayment:  upfront,
		RemainingAmount: remaining,
		AvailablePlans:  plans,
	}, nil
}

func (c *Calculator) buildPlan(duration int, principal, upfront, remaining decimal.Decimal) domain.PaymentPlan {
	if duration == 1 {
		// Full payment supersedes any partial-payment split.
		return domain.PaymentPlan{
			Duration:        1,
			MonthlyPayment:  principal,
			TotalAmount:     principal,
			InterestAmount:  decimal.Zero.Round(2),
			UpfrontPayment:  decimal.Zero.Round(2),
			RemainingAmount: principal,
			Description:     "Pay in full",
		}
	}

	interest := utils.Round2(remaining.Mul(c.interestRate))
	total := remaining.Add(interest)
	monthly := utils.MonthlyInstallment(total, duration)

	return domain.PaymentPlan{
		Duration:        duration,
		MonthlyPayment:  monthly,
		TotalAmount:     total,
		InterestAmount:  interest,
		UpfrontPayment:  upfront,
		RemainingAmount: remaining,
		Description:     fmt.Sprintf("%d monthly payments of %s", duration, monthly.StringFixed(2)),
	}
}

func (c *Calculator) validate(request *domain.CalculateRequest) error {
	if strings.TrimSpace(request.CustomerName) == "" {
		return customError.WrapValidationError("customerName is required", nil)
	}

	if !request.PrincipalAmount.IsPositive() {
		return customError.WrapValidationError(
			"principalAmount must be greater than zero",
			customError.ErrInvalidPrincipal,
		)
	}

	if request.UpfrontPayment.IsNegative() {
		return customError.WrapValidationError(
			"upfrontPayment must not be negative",
			customError.ErrInvalidUpfrontPayment,
		)
	}

	if request.UpfrontPayment.GreaterThanOrEqual(request.PrincipalAmount) {
		return customError.WrapValidationError(
			"upfrontPayment must be less than principalAmount",
			customError.ErrInvalidUpfrontPayment,
		)
	}

	return nil
}
