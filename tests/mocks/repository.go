package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/paygrid/plan-engine/internal/domain"
	"github.com/paygrid/plan-engine/internal/gateway"
	"github.com/paygrid/plan-engine/internal/repository"
)

type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) CreateWithSchedule(ctx context.Context, plan *domain.Plan, schedule []*domain.ScheduledPayment) error {
	args := m.Called(ctx, plan, schedule)
	return args.Error(0)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, planID uuid.UUID) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context, offset, limit int) ([]*domain.Plan, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Plan), args.Int(1), args.Error(2)
}

func (m *MockPlanRepository) GetSchedule(ctx context.Context, planID uuid.UUID) ([]*domain.ScheduledPayment, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledPayment), args.Error(1)
}

func (m *MockPlanRepository) GetScheduledPayment(ctx context.Context, planID uuid.UUID, sequenceNumber int) (*domain.ScheduledPayment, error) {
	args := m.Called(ctx, planID, sequenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledPayment), args.Error(1)
}

func (m *MockPlanRepository) ApplyOutcome(ctx context.Context, planID uuid.UUID, apply repository.OutcomeFunc) error {
	args := m.Called(ctx, planID, apply)
	return args.Error(0)
}

func (m *MockPlanRepository) GetDueSchedules(ctx context.Context, dueBy time.Time) ([]*domain.ScheduledPayment, error) {
	args := m.Called(ctx, dueBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledPayment), args.Error(1)
}

func (m *MockPlanRepository) ListByStatus(ctx context.Context, status string) ([]*domain.Plan, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Plan), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, customerID uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockECheckGateway struct {
	mock.Mock
}

func (m *MockECheckGateway) SubmitCheck(ctx context.Context, request *gateway.CheckRequest) (*domain.CheckResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckResult), args.Error(1)
}
