package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paygrid/plan-engine/internal/calculator"
	"github.com/paygrid/plan-engine/internal/config"
	"github.com/paygrid/plan-engine/internal/domain"
	"github.com/paygrid/plan-engine/internal/service"
	"github.com/paygrid/plan-engine/tests/mocks"
)

func newTestRouter(planRepo *mocks.FakePlanRepository, customerRepo *mocks.MockCustomerRepository, echeck *mocks.MockECheckGateway) *mux.Router {
	cfg := &config.Config{
		Business: config.BusinessConfig{
			InterestRate:     "0.19",
			DurationCatalog:  "1,3,6,12",
			MaxRetries:       3,
			DefaultThreshold: 2,
			ScheduleCacheTTL: "10s",
		},
	}
	calc := calculator.New(cfg.GetInterestRate(), cfg.GetDurationCatalog())
	planService := service.NewPlanService(planRepo, customerRepo, echeck, nil, calc, cfg)
	planHandler := NewPlanHandler(planService)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/payment-plans/calculate", planHandler.Calculate).Methods("POST")
	api.HandleFunc("/payment-plans", planHandler.Create).Methods("POST")
	api.HandleFunc("/payment-plans", planHandler.List).Methods("GET")
	api.HandleFunc("/payment-plans/{planId}/details", planHandler.Details).Methods("GET")
	api.HandleFunc("/payment-plans/{planId}/schedule", planHandler.Schedule).Methods("GET")
	api.HandleFunc("/payment-plans/{planId}/payments/{sequenceNumber}/outcome", planHandler.RecordOutcome).Methods("POST")
	api.HandleFunc("/payment-plans/{planId}/payments/{sequenceNumber}/retry", planHandler.Retry).Methods("POST")
	api.HandleFunc("/payment-plans/{planId}/cancel", planHandler.Cancel).Methods("POST")

	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCalculateEndpoint(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"principalAmount": 1000,
				"customerName":    "Jane Smith",
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["success"])
				data := body["data"].(map[string]interface{})
				plans := data["availablePlans"].([]interface{})
				assert.Len(t, plans, 4)

				// Pay-in-full plan is last
				lastPlan := plans[len(plans)-1].(map[string]interface{})
				assert.Equal(t, float64(1), lastPlan["duration"])
			},
		},
		{
			name: "Failure - zero principal rejected by validator",
			body: map[string]interface{}{
				"principalAmount": 0,
				"customerName":    "Jane Smith",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Failure - missing customer name",
			body: map[string]interface{}{
				"principalAmount": 1000,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Failure - upfront at least principal",
			body: map[string]interface{}{
				"principalAmount": 100,
				"customerName":    "Jane Smith",
				"upfrontPayment":  100,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(mocks.NewFakePlanRepository(), &mocks.MockCustomerRepository{}, &mocks.MockECheckGateway{})

			recorder := doJSON(t, router, http.MethodPost, "/api/v1/payment-plans/calculate", tt.body)

			assert.Equal(t, tt.expectedStatus, recorder.Code)

			if tt.validateBody != nil {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				tt.validateBody(t, body)
			}
		})
	}
}

func createPlanBody(principal, upfront string, duration int) map[string]interface{} {
	calc := calculator.New(decimal.RequireFromString("0.19"), []int{1, 3, 6, 12})
	resp, err := calc.Calculate(&domain.CalculateRequest{
		PrincipalAmount: decimal.RequireFromString(principal),
		CustomerName:    "Jane Smith",
		UpfrontPayment:  decimal.RequireFromString(upfront),
	})
	if err != nil {
		panic(err)
	}

	var chosen domain.PaymentPlan
	for _, plan := range resp.AvailablePlans {
		if plan.Duration == duration {
			chosen = plan
		}
	}

	return map[string]interface{}{
		"selectedPlan": map[string]interface{}{
			"duration":        chosen.Duration,
			"totalAmount":     chosen.TotalAmount,
			"monthlyPayment":  chosen.MonthlyPayment,
			"interestAmount":  chosen.InterestAmount,
			"upfrontPayment":  chosen.UpfrontPayment,
			"principalAmount": principal,
		},
		"customerName":  "Jane Smith",
		"email":         "jane@example.com",
		"phone":         "5551234567",
		"address1":      "1 Main St",
		"city":          "Springfield",
		"state":         "IL",
		"zip":           "62701",
		"routingNumber": "021000021",
		"accountNumber": "123456789",
		"bankName":      "First National",
	}
}

func TestCreateAndReadEndpoints(t *testing.T) {
	planRepo := mocks.NewFakePlanRepository()
	customerRepo := &mocks.MockCustomerRepository{}
	echeck := &mocks.MockECheckGateway{}

	var createdCustomer *domain.Customer
	customerRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		createdCustomer = args.Get(1).(*domain.Customer)
	}).Return(nil)
	echeck.On("SubmitCheck", mock.Anything, mock.Anything).Return(&domain.CheckResult{
		Result:            "0",
		ResultDescription: "Check entered successfully",
		CheckID:           "CHK-1",
	}, nil)

	router := newTestRouter(planRepo, customerRepo, echeck)

	// Create
	recorder := doJSON(t, router, http.MethodPost, "/api/v1/payment-plans", createPlanBody("1000", "200", 6))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Data struct {
			PaymentPlanID string `json:"paymentPlanId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	planID := created.Data.PaymentPlanID
	require.NotEmpty(t, planID)

	// Schedule
	recorder = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/payment-plans/%s/schedule", planID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var scheduleResp struct {
		Data domain.ScheduleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &scheduleResp))
	assert.Equal(t, 7, scheduleResp.Data.Summary.TotalPayments)
	assert.Equal(t, 1, scheduleResp.Data.Summary.CompletedPayments)

	// Details
	customerRepo.On("GetByID", mock.Anything, createdCustomer.ID).Return(createdCustomer, nil)
	recorder = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/payment-plans/%s/details", planID), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Outcome
	recorder = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/payment-plans/%s/payments/2/outcome", planID),
		map[string]interface{}{"status": "completed"})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Recording the same outcome again conflicts
	recorder = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/payment-plans/%s/payments/2/outcome", planID),
		map[string]interface{}{"status": "completed"})
	assert.Equal(t, http.StatusConflict, recorder.Code)

	// Listing
	recorder = doJSON(t, router, http.MethodGet, "/api/v1/payment-plans?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var listing domain.PlanListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listing))
	assert.True(t, listing.Success)
	assert.Equal(t, 1, listing.Count)
	assert.Equal(t, 1, listing.Pagination.Total)
}

func TestCreateEndpoint_DeclineSurfacesProcessorResponse(t *testing.T) {
	planRepo := mocks.NewFakePlanRepository()
	customerRepo := &mocks.MockCustomerRepository{}
	echeck := &mocks.MockECheckGateway{}

	customerRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	echeck.On("SubmitCheck", mock.Anything, mock.Anything).Return(&domain.CheckResult{
		Result:            "10",
		ResultDescription: "Routing number failed validation",
	}, nil)

	router := newTestRouter(planRepo, customerRepo, echeck)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/payment-plans", createPlanBody("1000", "0", 6))
	require.Equal(t, http.StatusPaymentRequired, recorder.Code, recorder.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])

	details := body["details"].(map[string]interface{})
	assert.Equal(t, "first_payment_declined", details["reason"])

	// Raw processor codes pass through untranslated under the contract's key
	raw := details["externalProcessorResponse"].(map[string]interface{})
	assert.Equal(t, "10", raw["result"])
	assert.Equal(t, "Routing number failed validation", raw["resultDescription"])
}

func TestPlanEndpoints_NotFoundAndBadIDs(t *testing.T) {
	router := newTestRouter(mocks.NewFakePlanRepository(), &mocks.MockCustomerRepository{}, &mocks.MockECheckGateway{})

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/payment-plans/not-a-uuid/schedule", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/payment-plans/5d4c9f2e-1b2a-4c3d-9e8f-7a6b5c4d3e2f/schedule", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost,
		"/api/v1/payment-plans/5d4c9f2e-1b2a-4c3d-9e8f-7a6b5c4d3e2f/payments/zero/outcome",
		map[string]interface{}{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
