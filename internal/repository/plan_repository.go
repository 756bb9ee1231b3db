package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paygrid/plan-engine/internal/domain"
)

type planRepository struct {
	db *sqlx.DB
}

func NewPlanRepository(db *sqlx.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) CreateWithSchedule(ctx context.Context, plan *domain.Plan, schedule []*domain.ScheduledPayment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	planQuery := `
		INSERT INTO payment_plans (
			id, customer_id, principal_amount, interest_rate, interest_amount,
			total_amount, monthly_payment, duration, upfront_payment, remaining_amount,
			start_date, end_date, status, total_payments, completed_payments,
			remaining_balance, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = tx.ExecContext(ctx, planQuery,
		plan.ID,
		plan.CustomerID,
		plan.PrincipalAmount,
		plan.InterestRate,
		plan.InterestAmount,
		plan.TotalAmount,
		plan.MonthlyPayment,
		plan.Duration,
		plan.UpfrontPayment,
		plan.RemainingAmount,
		plan.StartDate,
		plan.EndDate,
		plan.Status,
		plan.TotalPayments,
		plan.CompletedPayments,
		plan.RemainingBalance,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		return err
	}

	scheduleQuery := `
		INSERT INTO scheduled_payments (
			id, plan_id, sequence_number, scheduled_date, amount, is_upfront_payment,
			status, processed_date, retry_count, failure_reason, external_check_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, payment := range schedule {
		_, err = tx.ExecContext(ctx, scheduleQuery,
			payment.ID,
			payment.PlanID,
			payment.SequenceNumber,
			payment.ScheduledDate,
			payment.Amount,
			payment.IsUpfrontPayment,
			payment.Status,
			payment.ProcessedDate,
			payment.RetryCount,
			payment.FailureReason,
			payment.ExternalCheckID,
			payment.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *planRepository) GetByID(ctx context.Context, planID uuid.UUID) (*domain.Plan, error) {
	query := `
		SELECT id, customer_id, principal_amount, interest_rate, interest_amount,
		       total_amount, monthly_payment, duration, upfront_payment, remaining_amount,
		       start_date, end_date, status, total_payments, completed_payments,
		       remaining_balance, created_at, updated_at
		FROM payment_plans
		WHERE id = $1
	`

	var plan domain.Plan
	err := r.db.GetContext(ctx, &plan, query, planID)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *planRepository) List(ctx context.Context, offset, limit int) ([]*domain.Plan, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM payment_plans`); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, customer_id, principal_amount, interest_rate, interest_amount,
		       total_amount, monthly_payment, duration, upfront_payment, remaining_amount,
		       start_date, end_date, status, total_payments, completed_payments,
		       remaining_balance, created_at, updated_at
		FROM payment_plans
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`

	plans := make([]*domain.Plan, 0, limit)
	if err := r.db.SelectContext(ctx, &plans, query, offset, limit); err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

func (r *planRepository) GetSchedule(ctx context.Context, planID uuid.UUID) ([]*domain.ScheduledPayment, error) {
	query := `
		SELECT id, plan_id, sequence_number, scheduled_date, amount, is_upfront_payment,
		       status, processed_date, retry_count, failure_reason, external_check_id, created_at
		FROM scheduled_payments
		WHERE plan_id = $1
		ORDER BY sequence_number
	`

	var schedule []*domain.ScheduledPayment
	err := r.db.SelectContext(ctx, &schedule, query, planID)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *planRepository) GetScheduledPayment(ctx context.Context, planID uuid.UUID, sequenceNumber int) (*domain.ScheduledPayment, error) {
	query := `
		SELECT id, plan_id, sequence_number, scheduled_date, amount, is_upfront_payment,
		       status, processed_date, retry_count, failure_reason, external_check_id, created_at
		FROM scheduled_payments
		WHERE plan_id = $1 AND sequence_number = $2
	`

	var payment domain.ScheduledPayment
	err := r.db.GetContext(ctx, &payment, query, planID, sequenceNumber)
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// ApplyOutcome serializes writers per plan: the plan row is locked FOR UPDATE
// for the duration of the transaction, so concurrent outcome reports for the
// same plan queue up while different plans proceed independently.
func (r *planRepository) ApplyOutcome(ctx context.Context, planID uuid.UUID, apply OutcomeFunc) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	lockQuery := `
		SELECT id, customer_id, principal_amount, interest_rate, interest_amount,
		       total_amount, monthly_payment, duration, upfront_payment, remaining_amount,
		       start_date, end_date, status, total_payments, completed_payments,
		       remaining_balance, created_at, updated_at
		FROM payment_plans
		WHERE id = $1
		FOR UPDATE
	`

	var plan domain.Plan
	if err = tx.GetContext(ctx, &plan, lockQuery, planID); err != nil {
		return err
	}

	scheduleQuery := `
		SELECT id, plan_id, sequence_number, scheduled_date, amount, is_upfront_payment,
		       status, processed_date, retry_count, failure_reason, external_check_id, created_at
		FROM scheduled_payments
		WHERE plan_id = $1
		ORDER BY sequence_number
	`

	var schedule []*domain.ScheduledPayment
	if err = tx.SelectContext(ctx, &schedule, scheduleQuery, planID); err != nil {
		return err
	}

	changedPlan, changedRows, err := apply(&plan, schedule)
	if err != nil {
		return err
	}

	rowQuery := `
		UPDATE scheduled_payments
		SET status = $3, processed_date = $4, retry_count = $5, failure_reason = $6, external_check_id = $7
		WHERE plan_id = $1 AND sequence_number = $2
	`

	for _, row := range changedRows {
		_, err = tx.ExecContext(ctx, rowQuery,
			planID,
			row.SequenceNumber,
			row.Status,
			row.ProcessedDate,
			row.RetryCount,
			row.FailureReason,
			row.ExternalCheckID,
		)
		if err != nil {
			return err
		}
	}

	if changedPlan {
		planQuery := `
			UPDATE payment_plans
			SET status = $2, completed_payments = $3, remaining_balance = $4, updated_at = $5
			WHERE id = $1
		`

		_, err = tx.ExecContext(ctx, planQuery,
			planID,
			plan.Status,
			plan.CompletedPayments,
			plan.RemainingBalance,
			time.Now(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *planRepository) GetDueSchedules(ctx context.Context, dueBy time.Time) ([]*domain.ScheduledPayment, error) {
	query := `
		SELECT sp.id, sp.plan_id, sp.sequence_number, sp.scheduled_date, sp.amount,
		       sp.is_upfront_payment, sp.status, sp.processed_date, sp.retry_count,
		       sp.failure_reason, sp.external_check_id, sp.created_at
		FROM scheduled_payments sp
		JOIN payment_plans pp ON pp.id = sp.plan_id
		WHERE sp.status = 'pending' AND sp.scheduled_date <= $1 AND pp.status = 'active'
		ORDER BY sp.plan_id, sp.sequence_number
	`

	var schedule []*domain.ScheduledPayment
	err := r.db.SelectContext(ctx, &schedule, query, dueBy)
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *planRepository) ListByStatus(ctx context.Context, status string) ([]*domain.Plan, error) {
	query := `
		SELECT id, customer_id, principal_amount, interest_rate, interest_amount,
		       total_amount, monthly_payment, duration, upfront_payment, remaining_amount,
		       start_date, end_date, status, total_payments, completed_payments,
		       remaining_balance, created_at, updated_at
		FROM payment_plans
		WHERE status = $1
		ORDER BY created_at
	`

	var plans []*domain.Plan
	err := r.db.SelectContext(ctx, &plans, query, status)
	if err != nil {
		return nil, err
	}

	return plans, nil
}
