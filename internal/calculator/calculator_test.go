package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paygrid/plan-engine/internal/domain"
	customError "github.com/paygrid/plan-engine/pkg/errors"
)

func newTestCalculator() *Calculator {
	return New(decimal.RequireFromString("0.19"), []int{1, 3, 6, 12})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		principal      string
		customerName   string
		upfront        string
		expectedError  string
		validateResult func(*testing.T, *domain.PlansResponse)
	}{
		{
			name:         "Success - 1000 principal without upfront",
			principal:    "1000",
			customerName: "Jane Smith",
			upfront:      "0",
			validateResult: func(t *testing.T, resp *domain.PlansResponse) {
				assert.Equal(t, "Jane Smith", resp.CustomerName)
				assert.True(t, resp.RemainingAmount.Equal(dec("1000")))
				require.Len(t, resp.AvailablePlans, 4)

				twelve := planFor(t, resp, 12)
				assert.True(t, twelve.InterestAmount.Equal(dec("190.00")))
				assert.True(t, twelve.TotalAmount.Equal(dec("1190.00")))
				assert.True(t, twelve.MonthlyPayment.Equal(dec("99.17")))
			},
		},
		{
			name:         "Success - upfront payment reduces interest base",
			principal:    "1000",
			customerName: "Jane Smith",
			upfront:      "200",
			validateResult: func(t *testing.T, resp *domain.PlansResponse) {
				assert.True(t, resp.RemainingAmount.Equal(dec("800")))

				six := planFor(t, resp, 6)
				assert.True(t, six.InterestAmount.Equal(dec("152.00")))
				assert.True(t, six.TotalAmount.Equal(dec("952.00")))
				assert.True(t, six.UpfrontPayment.Equal(dec("200")))
				assert.True(t, six.RemainingAmount.Equal(dec("800")))
			},
		},
		{
			name:         "Success - pay in full ignores upfront split",
			principal:    "500",
			customerName: "Jane Smith",
			upfront:      "100",
			validateResult: func(t *testing.T, resp *domain.PlansResponse) {
				full := planFor(t, resp, 1)
				assert.True(t, full.InterestAmount.IsZero())
				assert.True(t, full.TotalAmount.Equal(dec("500")))
				assert.True(t, full.MonthlyPayment.Equal(dec("500")))
			},
		},
		{
			name:          "Failure - zero principal",
			principal:     "0",
			customerName:  "Jane Smith",
			upfront:       "0",
			expectedError: "principalAmount",
		},
		{
			name:          "Failure - negative principal",
			principal:     "-25",
			customerName:  "Jane Smith",
			upfront:       "0",
			expectedError: "principalAmount",
		},
		{
			name:          "Failure - upfront equals principal",
			principal:     "1000",
			customerName:  "Jane Smith",
			upfront:       "1000",
			expectedError: "upfrontPayment",
		},
		{
			name:          "Failure - negative upfront",
			principal:     "1000",
			customerName:  "Jane Smith",
			upfront:       "-1",
			expectedError: "upfrontPayment",
		},
		{
			name:          "Failure - blank customer name",
			principal:     "1000",
			customerName:  "   ",
			upfront:       "0",
			expectedError: "customerName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator()

			resp, err := calc.Calculate(&domain.CalculateRequest{
				PrincipalAmount: dec(tt.principal),
				CustomerName:    tt.customerName,
				UpfrontPayment:  dec(tt.upfront),
			})

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, resp)

				var be *customError.BusinessError
				require.ErrorAs(t, err, &be)
				assert.Equal(t, customError.ErrCodeValidationFailed, be.Code)
				return
			}

			require.NoError(t, err)
			tt.validateResult(t, resp)
		})
	}
}

func TestCalculate_OrderingPutsPayInFullLast(t *testing.T) {
	calc := New(dec("0.19"), []int{12, 1, 6, 3})

	resp, err := calc.Calculate(&domain.CalculateRequest{
		PrincipalAmount: dec("1000"),
		CustomerName:    "Jane Smith",
	})
	require.NoError(t, err)

	durations := make([]int, 0, len(resp.AvailablePlans))
	for _, plan := range resp.AvailablePlans {
		durations = append(durations, plan.Duration)
	}

	assert.Equal(t, []int{3, 6, 12, 1}, durations)
}

func TestCalculate_Idempotent(t *testing.T) {
	calc := newTestCalculator()
	request := &domain.CalculateRequest{
		PrincipalAmount: dec("1234.56"),
		CustomerName:    "Jane Smith",
		UpfrontPayment:  dec("34.56"),
	}

	first, err := calc.Calculate(request)
	require.NoError(t, err)
	second, err := calc.Calculate(request)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_RoundingRemainderWithinOneCent(t *testing.T) {
	calc := newTestCalculator()

	principals := []string{"1000", "999.99", "1234.56", "10", "87654.32"}
	for _, principal := range principals {
		resp, err := calc.Calculate(&domain.CalculateRequest{
			PrincipalAmount: dec(principal),
			CustomerName:    "Jane Smith",
		})
		require.NoError(t, err)

		for _, plan := range resp.AvailablePlans {
			if plan.IsPayInFull() {
				continue
			}

			// monthlyPayment * duration within one cent of totalAmount
			drift := plan.MonthlyPayment.
				Mul(decimal.NewFromInt(int64(plan.Duration))).
				Sub(plan.TotalAmount).
				Abs()
			assert.True(t, drift.LessThanOrEqual(dec("0.01")),
				"principal %s duration %d drift %s", principal, plan.Duration, drift)

			// totalAmount == remaining + interest
			assert.True(t, plan.TotalAmount.Equal(plan.RemainingAmount.Add(plan.InterestAmount)))
		}
	}
}

func TestCalculate_TinyPrincipalKeepsInstallmentsNonNegative(t *testing.T) {
	calc := newTestCalculator()

	for _, principal := range []string{"0.06", "0.01", "0.50"} {
		resp, err := calc.Calculate(&domain.CalculateRequest{
			PrincipalAmount: dec(principal),
			CustomerName:    "Jane Smith",
		})
		require.NoError(t, err)

		for _, plan := range resp.AvailablePlans {
			if plan.IsPayInFull() {
				continue
			}

			assert.False(t, plan.MonthlyPayment.IsNegative())

			// The first d-1 rows never exceed the total, so the last row
			// (total - monthly*(d-1)) stays non-negative
			covered := plan.MonthlyPayment.Mul(decimal.NewFromInt(int64(plan.Duration - 1)))
			assert.True(t, covered.LessThanOrEqual(plan.TotalAmount),
				"principal %s duration %d: %s covered of %s total",
				principal, plan.Duration, covered, plan.TotalAmount)
		}
	}
}

func TestCalculate_InterestComputedOnRemainingBalance(t *testing.T) {
	calc := newTestCalculator()

	resp, err := calc.Calculate(&domain.CalculateRequest{
		PrincipalAmount: dec("2500"),
		CustomerName:    "Jane Smith",
		UpfrontPayment:  dec("500"),
	})
	require.NoError(t, err)

	for _, plan := range resp.AvailablePlans {
		if plan.IsPayInFull() {
			continue
		}
		expected := dec("2000").Mul(dec("0.19")).Round(2)
		assert.True(t, plan.InterestAmount.Equal(expected),
			"duration %d interest %s", plan.Duration, plan.InterestAmount)
	}
}

func planFor(t *testing.T, resp *domain.PlansResponse, duration int) domain.PaymentPlan {
	t.Helper()
	for _, plan := range resp.AvailablePlans {
		if plan.Duration == duration {
			return plan
		}
	}
	t.Fatalf("no plan with duration %d", duration)
	return domain.PaymentPlan{}
}
