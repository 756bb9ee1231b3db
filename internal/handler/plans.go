package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/paygrid/plan-engine/internal/domain"
	"github.com/paygrid/plan-engine/internal/service"
	customError "github.com/paygrid/plan-engine/pkg/errors"
	"github.com/paygrid/plan-engine/pkg/response"
)

type PlanHandler struct {
	service   *service.PlanService
	validator *validator.Validate
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	v := validator.New()
	registerDecimalValidations(v)

	return &PlanHandler{
		service:   planService,
		validator: v,
	}
}

// registerDecimalValidations adds decimal comparison tags so request DTOs can
// constrain monetary fields the same way numeric fields use gt/gte.
func registerDecimalValidations(v *validator.Validate) {
	v.RegisterValidation("decimal_gt", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return value.GreaterThan(bound)
	})

	v.RegisterValidation("decimal_gte", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		bound := decimal.Zero
		if fl.Param() != "" {
			var err error
			if bound, err = decimal.NewFromString(fl.Param()); err != nil {
				return false
			}
		}
		return value.GreaterThanOrEqual(bound)
	})
}

// Calculate handles POST /payment-plans/calculate
func (h *PlanHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var request domain.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	plans, err := h.service.Calculate(r.Context(), &request)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, plans)
}

// Create handles POST /payment-plans
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	result, decline, err := h.service.CreatePlan(r.Context(), &request)
	if err != nil {
		if decline != nil {
			response.ErrorWithDetails(w, customError.HTTPStatus(err),
				"First payment was not accepted", err, decline)
			return
		}
		h.writeError(w, err)
		return
	}

	response.Created(w, result)
}

// Details handles GET /payment-plans/{planId}/details
func (h *PlanHandler) Details(w http.ResponseWriter, r *http.Request) {
	planID, ok := h.planID(w, r)
	if !ok {
		return
	}

	details, err := h.service.GetDetails(r.Context(), planID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, details)
}

// Schedule handles GET /payment-plans/{planId}/schedule
func (h *PlanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	planID, ok := h.planID(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), planID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, schedule)
}

// List handles GET /payment-plans?page&limit
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	listing, err := h.service.ListPlans(r.Context(), page, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// The listing payload is its own envelope (success/count/pagination/data).
	response.Raw(w, http.StatusOK, listing)
}

// RecordOutcome handles POST /payment-plans/{planId}/payments/{sequenceNumber}/outcome
func (h *PlanHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	planID, ok := h.planID(w, r)
	if !ok {
		return
	}

	sequenceNumber, err := strconv.Atoi(mux.Vars(r)["sequenceNumber"])
	if err != nil || sequenceNumber < 1 {
		response.BadRequest(w, "sequenceNumber must be a positive integer", err)
		return
	}

	var outcome domain.PaymentOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&outcome); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&outcome); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	payment, err := h.service.RecordPaymentOutcome(r.Context(), planID, sequenceNumber, &outcome)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, payment)
}

// Retry handles POST /payment-plans/{planId}/payments/{sequenceNumber}/retry
func (h *PlanHandler) Retry(w http.ResponseWriter, r *http.Request) {
	planID, ok := h.planID(w, r)
	if !ok {
		return
	}

	sequenceNumber, err := strconv.Atoi(mux.Vars(r)["sequenceNumber"])
	if err != nil || sequenceNumber < 1 {
		response.BadRequest(w, "sequenceNumber must be a positive integer", err)
		return
	}

	payment, err := h.service.RetryPayment(r.Context(), planID, sequenceNumber)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, payment)
}

// Cancel handles POST /payment-plans/{planId}/cancel
func (h *PlanHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	planID, ok := h.planID(w, r)
	if !ok {
		return
	}

	plan, err := h.service.CancelPlan(r.Context(), planID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, plan)
}

func (h *PlanHandler) planID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	planID, err := uuid.Parse(mux.Vars(r)["planId"])
	if err != nil {
		response.BadRequest(w, "planId must be a valid UUID", err)
		return uuid.Nil, false
	}
	return planID, true
}

func (h *PlanHandler) writeError(w http.ResponseWriter, err error) {
	status := customError.HTTPStatus(err)

	var be *customError.BusinessError
	if errors.As(err, &be) {
		response.Error(w, status, be.Message, err)
		return
	}

	response.InternalServerError(w, "Unexpected error", err)
}
