package gateway

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paygrid/plan-engine/internal/domain"
)

// ECheckGateway submits single check drafts to the external eCheck processor.
// The processor's raw result and description codes are passed through
// untranslated so declines can be diagnosed downstream.
type ECheckGateway interface {
	SubmitCheck(ctx context.Context, request *CheckRequest) (*domain.CheckResult, error)
}

// CheckRequest carries one draft against the customer's bank account.
type CheckRequest struct {
	Name          string
	Email         string
	Phone         string
	Address1      string
	Address2      string
	City          string
	State         string
	Zip           string
	Country       string
	RoutingNumber string
	AccountNumber string
	BankName      string
	Amount        decimal.Decimal
	Memo          string
	CheckDate     time.Time
}

type httpGateway struct {
	apiURL   string
	clientID string
	apiKey   string
	client   *http.Client
}

// NewHTTPGateway builds the production gateway client.
func NewHTTPGateway(apiURL, clientID, apiKey string, timeout time.Duration) ECheckGateway {
	return &httpGateway{
		apiURL:   apiURL,
		clientID: clientID,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// checkEnvelope is the processor's XML response shape.
type checkEnvelope struct {
	XMLName                 xml.Name `xml:"SingleCheckResult"`
	Result                  string   `xml:"Result"`
	ResultDescription       string   `xml:"ResultDescription"`
	VerifyResult            string   `xml:"VerifyResult"`
	VerifyResultDescription string   `xml:"VerifyResultDescription"`
	CheckNumber             string   `xml:"CheckNumber"`
	CheckID                 string   `xml:"Check_ID"`
}

func (g *httpGateway) SubmitCheck(ctx context.Context, request *CheckRequest) (*domain.CheckResult, error) {
	form := url.Values{}
	form.Set("Client_ID", g.clientID)
	form.Set("ApiPassword", g.apiKey)
	form.Set("Name", request.Name)
	form.Set("EmailAddress", request.Email)
	form.Set("Phone", request.Phone)
	form.Set("Address1", request.Address1)
	form.Set("Address2", request.Address2)
	form.Set("City", request.City)
	form.Set("State", request.State)
	form.Set("Zip", request.Zip)
	form.Set("Country", request.Country)
	form.Set("RoutingNumber", request.RoutingNumber)
	form.Set("AccountNumber", request.AccountNumber)
	form.Set("BankName", request.BankName)
	form.Set("CheckAmount", request.Amount.StringFixed(2))
	form.Set("CheckMemo", request.Memo)
	form.Set("CheckDate", request.CheckDate.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eCheck processor returned status %d", resp.StatusCode)
	}

	var envelope checkEnvelope
	if err := xml.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding eCheck processor response: %w", err)
	}

	return &domain.CheckResult{
		Result:                  envelope.Result,
		ResultDescription:       envelope.ResultDescription,
		VerifyResult:            envelope.VerifyResult,
		VerifyResultDescription: envelope.VerifyResultDescription,
		CheckNumber:             envelope.CheckNumber,
		CheckID:                 envelope.CheckID,
	}, nil
}

// testGateway approves every check with deterministic identifiers. Used in
// development and by tests; selected via ECHECK_TEST_MODE.
type testGateway struct {
	sequence int
}

func NewTestGateway() ECheckGateway {
	return &testGateway{}
}

func (g *testGateway) SubmitCheck(_ context.Context, request *CheckRequest) (*domain.CheckResult, error) {
	g.sequence++
	return &domain.CheckResult{
		Result:                  "0",
		ResultDescription:       "Check entered successfully",
		VerifyResult:            "0",
		VerifyResultDescription: "Account verified",
		CheckNumber:             fmt.Sprintf("%04d", g.sequence),
		CheckID:                 fmt.Sprintf("TEST-%d-%s", g.sequence, request.Amount.StringFixed(2)),
	}, nil
}
