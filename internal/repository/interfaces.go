package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/paygrid/plan-engine/internal/domain"
)

// PlanRepository defines the interface for payment plan data operations
type PlanRepository interface {
	// CreateWithSchedule persists a plan and its full schedule atomically
	CreateWithSchedule(ctx context.Context, plan *domain.Plan, schedule []*domain.ScheduledPayment) error

	// GetByID retrieves a plan by its ID
	GetByID(ctx context.Context, planID uuid.UUID) (*domain.Plan, error)

	// List retrieves plans ordered by creation date, newest first
	List(ctx context.Context, offset, limit int) ([]*domain.Plan, int, error)

	// GetSchedule retrieves a plan's schedule ordered by sequence number
	GetSchedule(ctx context.Context, planID uuid.UUID) ([]*domain.ScheduledPayment, error)

	// GetScheduledPayment retrieves one schedule row
	GetScheduledPayment(ctx context.Context, planID uuid.UUID, sequenceNumber int) (*domain.ScheduledPayment, error)

	// ApplyOutcome updates one schedule row and the plan's aggregates in a
	// single transaction scoped to the plan
	ApplyOutcome(ctx context.Context, planID uuid.UUID, apply OutcomeFunc) error

	// GetDueSchedules retrieves pending rows due on or before the given date,
	// across all active plans
	GetDueSchedules(ctx context.Context, dueBy time.Time) ([]*domain.ScheduledPayment, error)

	// ListByStatus retrieves all plans in the given status
	ListByStatus(ctx context.Context, status string) ([]*domain.Plan, error)
}

// OutcomeFunc mutates a plan and its schedule inside the per-plan transaction.
// The rows passed in reflect the locked, current state; the function returns
// the rows it changed.
type OutcomeFunc func(plan *domain.Plan, schedule []*domain.ScheduledPayment) (changedPlan bool, changedRows []*domain.ScheduledPayment, err error)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	// Create creates a new customer
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by ID
	GetByID(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error)
}
