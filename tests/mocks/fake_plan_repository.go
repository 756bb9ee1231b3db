package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paygrid/plan-engine/internal/domain"
	"github.com/paygrid/plan-engine/internal/repository"
)

// FakePlanRepository is an in-memory PlanRepository. Unlike the testify mock
// it executes ApplyOutcome closures against real state, which is what the
// schedule state-machine tests need.
type FakePlanRepository struct {
	mu        sync.Mutex
	plans     map[uuid.UUID]*domain.Plan
	schedules map[uuid.UUID][]*domain.ScheduledPayment
}

func NewFakePlanRepository() *FakePlanRepository {
	return &FakePlanRepository{
		plans:     make(map[uuid.UUID]*domain.Plan),
		schedules: make(map[uuid.UUID][]*domain.ScheduledPayment),
	}
}

func (f *FakePlanRepository) CreateWithSchedule(_ context.Context, plan *domain.Plan, schedule []*domain.ScheduledPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	planCopy := *plan
	f.plans[plan.ID] = &planCopy

	rows := make([]*domain.ScheduledPayment, len(schedule))
	for i, payment := range schedule {
		rowCopy := *payment
		rows[i] = &rowCopy
	}
	f.schedules[plan.ID] = rows

	return nil
}

func (f *FakePlanRepository) GetByID(_ context.Context, planID uuid.UUID) (*domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	plan, ok := f.plans[planID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	planCopy := *plan
	return &planCopy, nil
}

func (f *FakePlanRepository) List(_ context.Context, offset, limit int) ([]*domain.Plan, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]*domain.Plan, 0, len(f.plans))
	for _, plan := range f.plans {
		planCopy := *plan
		all = append(all, &planCopy)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []*domain.Plan{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *FakePlanRepository) GetSchedule(_ context.Context, planID uuid.UUID) ([]*domain.ScheduledPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.copySchedule(planID), nil
}

func (f *FakePlanRepository) GetScheduledPayment(_ context.Context, planID uuid.UUID, sequenceNumber int) (*domain.ScheduledPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range f.schedules[planID] {
		if row.SequenceNumber == sequenceNumber {
			rowCopy := *row
			return &rowCopy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *FakePlanRepository) ApplyOutcome(_ context.Context, planID uuid.UUID, apply repository.OutcomeFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	plan, ok := f.plans[planID]
	if !ok {
		return sql.ErrNoRows
	}

	planCopy := *plan
	schedule := f.copySchedule(planID)

	changedPlan, changedRows, err := apply(&planCopy, schedule)
	if err != nil {
		return err
	}

	for _, changed := range changedRows {
		for i, row := range f.schedules[planID] {
			if row.SequenceNumber == changed.SequenceNumber {
				rowCopy := *changed
				f.schedules[planID][i] = &rowCopy
			}
		}
	}

	if changedPlan {
		f.plans[planID] = &planCopy
	}

	return nil
}

func (f *FakePlanRepository) GetDueSchedules(_ context.Context, dueBy time.Time) ([]*domain.ScheduledPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var due []*domain.ScheduledPayment
	for planID, rows := range f.schedules {
		if f.plans[planID].Status != domain.PlanStatusActive {
			continue
		}
		for _, row := range rows {
			if row.Status == domain.PaymentStatusPending && !row.ScheduledDate.After(dueBy) {
				rowCopy := *row
				due = append(due, &rowCopy)
			}
		}
	}
	return due, nil
}

func (f *FakePlanRepository) ListByStatus(_ context.Context, status string) ([]*domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var plans []*domain.Plan
	for _, plan := range f.plans {
		if plan.Status == status {
			planCopy := *plan
			plans = append(plans, &planCopy)
		}
	}
	return plans, nil
}

func (f *FakePlanRepository) copySchedule(planID uuid.UUID) []*domain.ScheduledPayment {
	rows := f.schedules[planID]
	schedule := make([]*domain.ScheduledPayment, len(rows))
	for i, row := range rows {
		rowCopy := *row
		schedule[i] = &rowCopy
	}
	return schedule
}
