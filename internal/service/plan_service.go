package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/paygrid/plan-engine/internal/calculator"
	"github.com/paygrid/plan-engine/internal/config"
	"github.com/paygrid/plan-engine/internal/domain"
	"github.com/paygrid/plan-engine/internal/gateway"
	"github.com/paygrid/plan-engine/internal/repository"
	customError "github.com/paygrid/plan-engine/pkg/errors"
	"github.com/paygrid/plan-engine/pkg/utils"
)

type PlanService struct {
	planRepo     repository.PlanRepository
	customerRepo repository.CustomerRepository
	gateway      gateway.ECheckGateway
	redis        *redis.Client
	calculator   *calculator.Calculator
	config       *config.Config
}

func NewPlanService(
	planRepo repository.PlanRepository,
	customerRepo repository.CustomerRepository,
	echeck gateway.ECheckGateway,
	redisClient *redis.Client,
	calc *calculator.Calculator,
	cfg *config.Config,
) *PlanService {
	return &PlanService{
		planRepo:     planRepo,
		customerRepo: customerRepo,
		gateway:      echeck,
		redis:        redisClient,
		calculator:   calc,
		config:       cfg,
	}
}

// Calculate produces candidate plans for a quote. Stateless and repeatable.
func (s *PlanService) Calculate(_ context.Context, request *domain.CalculateRequest) (*domain.PlansResponse, error) {
	return s.calculator.Calculate(request)
}

// CreatePlan persists a selected candidate with its full payment schedule and
// submits the first due payment to the eCheck processor. A declined first
// payment cancels the plan: an unfunded plan is never left active. The decline
// details carry the processor's raw response untranslated.
func (s *PlanService) CreatePlan(ctx context.Context, request *domain.CreatePlanRequest) (*domain.CreatePlanResult, *domain.DeclineDetails, error) {
	chosen, err := s.verifySelectedPlan(request)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	startDate := utils.StartOfDay(now)
	if request.StartDate != nil {
		startDate = utils.StartOfDay(*request.StartDate)
	}

	customer := buildCustomer(request, now)

	plan, schedule := s.buildPlanWithSchedule(chosen, customer.ID, startDate, now)

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	if err := s.planRepo.CreateWithSchedule(ctx, plan, schedule); err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}

	// First row is due at the start date; fund the plan before reporting success.
	first := schedule[0]
	checkResult, submitErr := s.gateway.SubmitCheck(ctx, &gateway.CheckRequest{
		Name:          customer.Name,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Address1:      customer.Address1,
		Address2:      customer.Address2,
		City:          customer.City,
		State:         customer.State,
		Zip:           customer.Zip,
		Country:       customer.Country,
		RoutingNumber: customer.RoutingNumber,
		AccountNumber: customer.AccountNumber,
		BankName:      customer.BankName,
		Amount:        first.Amount,
		Memo:          fmt.Sprintf("Payment 1 of %d", plan.TotalPayments),
		CheckDate:     startDate,
	})

	if submitErr != nil || !checkResult.Approved() {
		reason := "processor_unavailable"
		message := "The payment processor could not be reached"
		if submitErr == nil {
			reason = "first_payment_declined"
			message = checkResult.ResultDescription
		}

		if cancelErr := s.cancelUnfunded(ctx, plan.ID, message); cancelErr != nil {
			log.Printf("Failed to cancel unfunded plan %s: %v", plan.ID, cancelErr)
		}

		details := &domain.DeclineDetails{
			Reason:  reason,
			Message: message,
			Suggestions: []string{
				"Verify the routing and account numbers",
				"Confirm the account can accept eCheck drafts",
				"Try again or use a different bank account",
			},
			ProcessorResponse: checkResult,
		}
		return nil, details, customError.WrapProcessorDeclined(message)
	}

	if err := s.recordFirstPayment(ctx, plan.ID, checkResult); err != nil {
		return nil, nil, err
	}

	return &domain.CreatePlanResult{
		PaymentPlanID: plan.ID.String(),
		CustomerID:    customer.ID.String(),
		PlanDetails: domain.PlanDetailsSummary{
			PrincipalAmount:  plan.PrincipalAmount,
			TotalAmount:      plan.TotalAmount,
			MonthlyPayment:   plan.MonthlyPayment,
			Duration:         plan.Duration,
			InterestRate:     plan.InterestRate.String(),
			InterestAmount:   plan.InterestAmount,
			UpfrontPayment:   plan.UpfrontPayment,
			RemainingAmount:  plan.RemainingAmount,
			FirstPaymentDate: schedule[0].ScheduledDate,
			LastPaymentDate:  schedule[len(schedule)-1].ScheduledDate,
		},
		FirstPayment: &domain.FirstPaymentInfo{
			Success:         true,
			ProcessorResult: checkResult,
			SequenceNumber:  first.SequenceNumber,
			Amount:          first.Amount,
		},
		Message: "Payment plan created and first payment submitted",
	}, nil, nil
}

// verifySelectedPlan re-derives the candidate from the submitted principal and
// rejects requests whose amounts do not match the calculator's output.
func (s *PlanService) verifySelectedPlan(request *domain.CreatePlanRequest) (*domain.PaymentPlan, error) {
	selected := request.SelectedPlan

	response, err := s.calculator.Calculate(&domain.CalculateRequest{
		PrincipalAmount: selected.PrincipalAmount,
		CustomerName:    request.CustomerName,
		UpfrontPayment:  selected.UpfrontPayment,
	})
	if err != nil {
		return nil, err
	}

	for i := range response.AvailablePlans {
		candidate := response.AvailablePlans[i]
		if candidate.Duration != selected.Duration {
			continue
		}
		if !candidate.TotalAmount.Equal(selected.TotalAmount) ||
			!candidate.MonthlyPayment.Equal(selected.MonthlyPayment) {
			return nil, customError.WrapValidationError(
				"selected plan amounts do not match the calculated plan", nil)
		}
		return &candidate, nil
	}

	return nil, customError.WrapValidationError(
		fmt.Sprintf("duration %d is not an available plan", selected.Duration),
		customError.ErrUnknownDuration,
	)
}

func (s *PlanService) buildPlanWithSchedule(chosen *domain.PaymentPlan, customerID uuid.UUID, startDate, now time.Time) (*domain.Plan, []*domain.ScheduledPayment) {
	planID := uuid.New()

	schedule := generateSchedule(planID, chosen, startDate, now)

	principal := chosen.RemainingAmount.Add(chosen.UpfrontPayment)
	if chosen.IsPayInFull() {
		principal = chosen.TotalAmount
	}

	totalPayable := chosen.TotalAmount.Add(chosen.UpfrontPayment)

	plan := &domain.Plan{
		ID:                planID,
		CustomerID:        customerID,
		PrincipalAmount:   principal,
		InterestRate:      s.calculator.InterestRate(),
		InterestAmount:    chosen.InterestAmount,
		TotalAmount:       chosen.TotalAmount,
		MonthlyPayment:    chosen.MonthlyPayment,
		Duration:          chosen.Duration,
		UpfrontPayment:    chosen.UpfrontPayment,
		RemainingAmount:   chosen.RemainingAmount,
		StartDate:         startDate,
		EndDate:           schedule[len(schedule)-1].ScheduledDate,
		Status:            domain.PlanStatusPending,
		TotalPayments:     len(schedule),
		CompletedPayments: 0,
		RemainingBalance:  totalPayable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return plan, schedule
}

// generateSchedule emits the plan's full schedule: an upfront row first when
// there is an upfront payment, then one row per month on the start date's
// day-of-month. The last installment absorbs the sub-cent rounding drift so
// the rows sum exactly to the plan total. Pay-in-full plans get a single row
// dated at the start.
func generateSchedule(planID uuid.UUID, chosen *domain.PaymentPlan, startDate, now time.Time) []*domain.ScheduledPayment {
	totalRows := chosen.Duration
	hasUpfront := chosen.UpfrontPayment.IsPositive() && !chosen.IsPayInFull()
	if hasUpfront {
		totalRows++
	}

	schedule := make([]*domain.ScheduledPayment, 0, totalRows)
	sequence := 1

	if hasUpfront {
		schedule = append(schedule, &domain.ScheduledPayment{
			ID:               uuid.New(),
			PlanID:           planID,
			SequenceNumber:   sequence,
			ScheduledDate:    startDate,
			Amount:           chosen.UpfrontPayment,
			IsUpfrontPayment: true,
			Status:           domain.PaymentStatusPending,
			CreatedAt:        now,
		})
		sequence++
	}

	if chosen.IsPayInFull() {
		return append(schedule, &domain.ScheduledPayment{
			ID:             uuid.New(),
			PlanID:         planID,
			SequenceNumber: sequence,
			ScheduledDate:  startDate,
			Amount:         chosen.TotalAmount,
			Status:         domain.PaymentStatusPending,
			CreatedAt:      now,
		})
	}

	for month := 1; month <= chosen.Duration; month++ {
		amount := chosen.MonthlyPayment
		if month == chosen.Duration {
			amount = utils.FinalInstallment(chosen.TotalAmount, chosen.MonthlyPayment, chosen.Duration)
		}

		schedule = append(schedule, &domain.ScheduledPayment{
			ID:             uuid.New(),
			PlanID:         planID,
			SequenceNumber: sequence,
			ScheduledDate:  utils.AddMonths(startDate, month),
			Amount:         amount,
			Status:         domain.PaymentStatusPending,
			CreatedAt:      now,
		})
		sequence++
	}

	return schedule
}

// recordFirstPayment marks sequence 1 completed and activates the plan.
func (s *PlanService) recordFirstPayment(ctx context.Context, planID uuid.UUID, result *domain.CheckResult) error {
	outcome := &domain.PaymentOutcomeRequest{
		Status:          domain.PaymentStatusCompleted,
		ExternalCheckID: result.CheckID,
	}

	_, err := s.RecordPaymentOutcome(ctx, planID, 1, outcome)
	return err
}

// RecordPaymentOutcome applies one disbursement attempt's result to its
// schedule row inside the per-plan transaction. Completed rows are immutable;
// attempts to transition them are rejected, not silently ignored.
func (s *PlanService) RecordPaymentOutcome(ctx context.Context, planID uuid.UUID, sequenceNumber int, outcome *domain.PaymentOutcomeRequest) (*domain.ScheduledPayment, error) {
	var updated *domain.ScheduledPayment

	err := s.planRepo.ApplyOutcome(ctx, planID, func(plan *domain.Plan, schedule []*domain.ScheduledPayment) (bool, []*domain.ScheduledPayment, error) {
		row := findBySequence(schedule, sequenceNumber)
		if row == nil {
			return false, nil, customError.WrapPaymentNotFound(planID.String(), sequenceNumber)
		}

		if plan.IsTerminal() {
			return false, nil, customError.WrapPlanNotActive(planID.String(), plan.Status)
		}

		if row.Status != domain.PaymentStatusPending {
			return false, nil, customError.WrapPaymentAlreadyFinal(planID.String(), sequenceNumber, row.Status)
		}

		processedDate := time.Now()
		if outcome.ProcessedDate != nil {
			processedDate = *outcome.ProcessedDate
		}

		switch outcome.Status {
		case domain.PaymentStatusCompleted:
			row.Status = domain.PaymentStatusCompleted
			row.ProcessedDate = &processedDate
			if outcome.ExternalCheckID != "" {
				checkID := outcome.ExternalCheckID
				row.ExternalCheckID = &checkID
			}

			plan.CompletedPayments++
			plan.RemainingBalance = plan.RemainingBalance.Sub(row.Amount)
			if plan.CompletedPayments >= plan.TotalPayments {
				plan.Status = domain.PlanStatusCompleted
				plan.RemainingBalance = decimal.Zero.Round(2)
			} else {
				plan.Status = domain.PlanStatusActive
			}

		case domain.PaymentStatusFailed:
			row.Status = domain.PaymentStatusFailed
			row.RetryCount++
			row.ProcessedDate = &processedDate
			if outcome.FailureReason != "" {
				reason := outcome.FailureReason
				row.FailureReason = &reason
			}
			if outcome.ExternalCheckID != "" {
				checkID := outcome.ExternalCheckID
				row.ExternalCheckID = &checkID
			}

			if s.countTerminalFailures(schedule) >= s.config.Business.DefaultThreshold {
				plan.Status = domain.PlanStatusDefaulted
			}

		default:
			return false, nil, customError.WrapValidationError(
				fmt.Sprintf("outcome status must be completed or failed, got %q", outcome.Status), nil)
		}

		updated = row
		return true, []*domain.ScheduledPayment{row}, nil
	})

	if err != nil {
		return nil, s.wrapRepoError(err, planID)
	}

	s.invalidateScheduleCache(ctx, planID)

	return updated, nil
}

// RetryPayment moves a failed row back to pending so the executor can attempt
// it again. The retry counter already tracks failed attempts; the row becomes
// terminal once the configured maximum is reached.
func (s *PlanService) RetryPayment(ctx context.Context, planID uuid.UUID, sequenceNumber int) (*domain.ScheduledPayment, error) {
	var updated *domain.ScheduledPayment

	err := s.planRepo.ApplyOutcome(ctx, planID, func(plan *domain.Plan, schedule []*domain.ScheduledPayment) (bool, []*domain.ScheduledPayment, error) {
		row := findBySequence(schedule, sequenceNumber)
		if row == nil {
			return false, nil, customError.WrapPaymentNotFound(planID.String(), sequenceNumber)
		}

		if plan.IsTerminal() {
			return false, nil, customError.WrapPlanNotActive(planID.String(), plan.Status)
		}

		if row.Status != domain.PaymentStatusFailed {
			return false, nil, customError.WrapPaymentAlreadyFinal(planID.String(), sequenceNumber, row.Status)
		}

		if row.IsTerminalFor(s.config.Business.MaxRetries) {
			return false, nil, customError.WrapRetryLimitReached(planID.String(), sequenceNumber, row.RetryCount)
		}

		row.Status = domain.PaymentStatusPending
		row.ProcessedDate = nil

		updated = row
		return true, []*domain.ScheduledPayment{row}, nil
	})

	if err != nil {
		return nil, s.wrapRepoError(err, planID)
	}

	s.invalidateScheduleCache(ctx, planID)

	return updated, nil
}

// CancelPlan moves a plan to cancelled and marks its remaining pending rows
// with the dedicated cancelled status so none is left pending forever.
func (s *PlanService) CancelPlan(ctx context.Context, planID uuid.UUID) (*domain.Plan, error) {
	var cancelled *domain.Plan

	err := s.planRepo.ApplyOutcome(ctx, planID, func(plan *domain.Plan, schedule []*domain.ScheduledPayment) (bool, []*domain.ScheduledPayment, error) {
		if plan.IsTerminal() {
			return false, nil, customError.WrapPlanNotActive(planID.String(), plan.Status)
		}

		var changed []*domain.ScheduledPayment
		for _, row := range schedule {
			if row.Status == domain.PaymentStatusPending {
				row.Status = domain.PaymentStatusCancelled
				changed = append(changed, row)
			}
		}

		plan.Status = domain.PlanStatusCancelled
		cancelled = plan
		return true, changed, nil
	})

	if err != nil {
		return nil, s.wrapRepoError(err, planID)
	}

	s.invalidateScheduleCache(ctx, planID)

	return cancelled, nil
}

// cancelUnfunded records the first payment's failure and cancels the plan.
func (s *PlanService) cancelUnfunded(ctx context.Context, planID uuid.UUID, reason string) error {
	return s.planRepo.ApplyOutcome(ctx, planID, func(plan *domain.Plan, schedule []*domain.ScheduledPayment) (bool, []*domain.ScheduledPayment, error) {
		var changed []*domain.ScheduledPayment

		if first := findBySequence(schedule, 1); first != nil && first.Status == domain.PaymentStatusPending {
			now := time.Now()
			first.Status = domain.PaymentStatusFailed
			first.RetryCount++
			first.ProcessedDate = &now
			failureReason := reason
			first.FailureReason = &failureReason
			changed = append(changed, first)
		}

		for _, row := range schedule {
			if row.Status == domain.PaymentStatusPending {
				row.Status = domain.PaymentStatusCancelled
				changed = append(changed, row)
			}
		}

		plan.Status = domain.PlanStatusCancelled
		return true, changed, nil
	})
}

// GetSchedule returns the schedule summary plus rows. The UI polls this every
// ~30 seconds, so responses are served from Redis when fresh; outcome writes
// invalidate the entry.
func (s *PlanService) GetSchedule(ctx context.Context, planID uuid.UUID) (*domain.ScheduleResponse, error) {
	cacheKey := scheduleCacheKey(planID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var response domain.ScheduleResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return &response, nil
			}
		}
	}

	schedule, err := s.planRepo.GetSchedule(ctx, planID)
	if err != nil {
		return nil, s.wrapRepoError(err, planID)
	}
	if len(schedule) == 0 {
		return nil, customError.WrapPlanNotFound(planID.String())
	}

	response := &domain.ScheduleResponse{
		Summary:  domain.Summarize(schedule),
		Schedule: schedule,
	}

	if s.redis != nil {
		if payload, err := json.Marshal(response); err == nil {
			s.redis.Set(ctx, cacheKey, payload, s.config.GetScheduleCacheTTL())
		}
	}

	return response, nil
}

// GetDetails returns the plan with its customer and full schedule.
func (s *PlanService) GetDetails(ctx context.Context, planID uuid.UUID) (*domain.PlanDetailsResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, s.wrapRepoError(err, planID)
	}

	customer, err := s.customerRepo.GetByID(ctx, plan.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCustomerNotFound(plan.CustomerID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	schedule, err := s.planRepo.GetSchedule(ctx, planID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.PlanDetailsResponse{
		PaymentPlan: &domain.PlanWithCustomer{
			Plan:     plan,
			Customer: customer,
		},
		PaymentSchedule: schedule,
	}, nil
}

// ListPlans returns a page of plans for the admin table, newest first.
func (s *PlanService) ListPlans(ctx context.Context, page, limit int) (*domain.PlanListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	plans, total, err := s.planRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	pages := total / limit
	if total%limit > 0 {
		pages++
	}

	return &domain.PlanListResponse{
		Success: true,
		Count:   len(plans),
		Pagination: domain.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
		Data: plans,
	}, nil
}

// ProcessDuePayments submits every due pending row of active plans to the
// processor and records the outcomes. Called by the scheduler.
func (s *PlanService) ProcessDuePayments(ctx context.Context, now time.Time) error {
	due, err := s.planRepo.GetDueSchedules(ctx, utils.StartOfDay(now))
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	for _, row := range due {
		if err := s.processDueRow(ctx, row); err != nil {
			log.Printf("Processing payment #%d of plan %s: %v", row.SequenceNumber, row.PlanID, err)
		}
	}

	return nil
}

func (s *PlanService) processDueRow(ctx context.Context, due *domain.ScheduledPayment) error {
	// The due list is a snapshot; re-read the row and skip it if an outcome
	// arrived in the meantime.
	row, err := s.planRepo.GetScheduledPayment(ctx, due.PlanID, due.SequenceNumber)
	if err != nil {
		return s.wrapRepoError(err, due.PlanID)
	}
	if row.Status != domain.PaymentStatusPending {
		return nil
	}

	plan, err := s.planRepo.GetByID(ctx, row.PlanID)
	if err != nil {
		return s.wrapRepoError(err, row.PlanID)
	}

	customer, err := s.customerRepo.GetByID(ctx, plan.CustomerID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	result, err := s.gateway.SubmitCheck(ctx, &gateway.CheckRequest{
		Name:          customer.Name,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Address1:      customer.Address1,
		Address2:      customer.Address2,
		City:          customer.City,
		State:         customer.State,
		Zip:           customer.Zip,
		Country:       customer.Country,
		RoutingNumber: customer.RoutingNumber,
		AccountNumber: customer.AccountNumber,
		BankName:      customer.BankName,
		Amount:        row.Amount,
		Memo:          fmt.Sprintf("Payment %d of %d", row.SequenceNumber, plan.TotalPayments),
		CheckDate:     row.ScheduledDate,
	})

	outcome := &domain.PaymentOutcomeRequest{}
	switch {
	case err != nil:
		outcome.Status = domain.PaymentStatusFailed
		outcome.FailureReason = err.Error()
	case result.Approved():
		outcome.Status = domain.PaymentStatusCompleted
		outcome.ExternalCheckID = result.CheckID
	default:
		outcome.Status = domain.PaymentStatusFailed
		outcome.FailureReason = result.ResultDescription
		outcome.ExternalCheckID = result.CheckID
	}

	_, recordErr := s.RecordPaymentOutcome(ctx, row.PlanID, row.SequenceNumber, outcome)
	return recordErr
}

// MarkDefaults sweeps active plans whose terminally-failed rows have crossed
// the configured threshold. Safety net for outcomes recorded before a
// configuration change; the outcome path applies the threshold inline.
func (s *PlanService) MarkDefaults(ctx context.Context) error {
	plans, err := s.planRepo.ListByStatus(ctx, domain.PlanStatusActive)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	for _, plan := range plans {
		planID := plan.ID
		err := s.planRepo.ApplyOutcome(ctx, planID, func(plan *domain.Plan, schedule []*domain.ScheduledPayment) (bool, []*domain.ScheduledPayment, error) {
			if plan.IsTerminal() {
				return false, nil, nil
			}
			if s.countTerminalFailures(schedule) < s.config.Business.DefaultThreshold {
				return false, nil, nil
			}
			plan.Status = domain.PlanStatusDefaulted
			return true, nil, nil
		})
		if err != nil {
			log.Printf("Default sweep for plan %s: %v", planID, err)
			continue
		}
		s.invalidateScheduleCache(ctx, planID)
	}

	return nil
}

func (s *PlanService) countTerminalFailures(schedule []*domain.ScheduledPayment) int {
	count := 0
	for _, row := range schedule {
		if row.Status == domain.PaymentStatusFailed && row.IsTerminalFor(s.config.Business.MaxRetries) {
			count++
		}
	}
	return count
}

func (s *PlanService) wrapRepoError(err error, planID uuid.UUID) error {
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapPlanNotFound(planID.String())
	}
	return customError.WrapDatabaseError(err)
}

func (s *PlanService) invalidateScheduleCache(ctx context.Context, planID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, scheduleCacheKey(planID)).Err(); err != nil {
		log.Printf("Invalidating schedule cache for plan %s: %v", planID, err)
	}
}

func scheduleCacheKey(planID uuid.UUID) string {
	return fmt.Sprintf("plan:schedule:%s", planID)
}

func findBySequence(schedule []*domain.ScheduledPayment, sequenceNumber int) *domain.ScheduledPayment {
	for _, row := range schedule {
		if row.SequenceNumber == sequenceNumber {
			return row
		}
	}
	return nil
}

func buildCustomer(request *domain.CreatePlanRequest, now time.Time) *domain.Customer {
	country := request.Country
	if country == "" {
		country = "US"
	}

	customer := &domain.Customer{
		ID:             uuid.New(),
		Name:           request.CustomerName,
		Email:          request.Email,
		Phone:          request.Phone,
		PhoneExtension: request.PhoneExtension,
		Address1:       request.Address1,
		Address2:       request.Address2,
		City:           request.City,
		State:          request.State,
		Zip:            request.Zip,
		Country:        country,
		RoutingNumber:  request.RoutingNumber,
		AccountNumber:  request.AccountNumber,
		BankName:       request.BankName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if request.Documents != nil {
		customer.PhotoID = request.Documents.PhotoID
		customer.Signature = request.Documents.Signature
		customer.ProofOfPayment = request.Documents.ProofOfPayment
	}

	return customer
}
