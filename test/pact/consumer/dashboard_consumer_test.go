//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/erpflow/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

type dashboard struct {
	KPIs struct {
		Revenue struct {
			Current  float64 `json:"current"`
			Previous float64 `json:"previous"`
			Change   float64 `json:"change"`
			Total    float64 `json:"total"`
		} `json:"revenue"`
		Invoices struct {
			Total       int64   `json:"total"`
			Paid        int64   `json:"paid"`
			Pending     int64   `json:"pending"`
			PaymentRate float64 `json:"paymentRate"`
		} `json:"invoices"`
	} `json:"kpis"`
	Activities struct {
		Invoices  []activity `json:"invoices"`
		Customers []activity `json:"customers"`
	} `json:"activities"`
}

type loginResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func kpisMatcher() matchers.Map {
	return matchers.Map{
		"revenue": matchers.Map{
			"current":  matchers.Like(0),
			"previous": matchers.Like(0),
			"change":   matchers.Like(0),
			"total":    matchers.Like(0),
		},
		"customers": matchers.Map{
			"total":  matchers.Like(0),
			"active": matchers.Like(0),
			"new":    matchers.Like(0),
			"change": matchers.Like(0),
		},
		"invoices": matchers.Map{
			"total":       matchers.Like(0),
			"paid":        matchers.Like(0),
			"pending":     matchers.Like(0),
			"paymentRate": matchers.Like(0),
		},
		"leads": matchers.Map{
			"total":          matchers.Like(0),
			"open":           matchers.Like(0),
			"won":            matchers.Like(0),
			"conversionRate": matchers.Like(0),
			"pipeline":       matchers.Like(map[string]any{}),
		},
		"inventory": matchers.Map{
			"totalProducts": matchers.Like(0),
			"lowStock":      matchers.Like(0),
		},
	}
}

func activityMatcher(kind, title string) matchers.Map {
	return matchers.Map{
		"id":          matchers.Like("8b0f2a36-3c1e-4d2f-9a55-0c3e8e9f1a20"),
		"type":        matchers.S(kind),
		"title":       matchers.Like(title),
		"description": matchers.Like("Acme Corporation - $1299.98"),
		"date":        matchers.Like("2026-10-19T09:30:00Z"),
		"status":      matchers.Like("paid"),
	}
}

func newPact(t *testing.T) *pactconsumer.V2HTTPMockProvider {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)
	return pact
}

var jsonContentType = matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

func TestDashboardContract_EmptyDatabase(t *testing.T) {
	pact := newPact(t)

	pact.AddInteraction().
		Given(pacttest.StateEmptyDatabase).
		UponReceiving("a dashboard request against an empty database").
		WithRequest("GET", "/api/analytics/dashboard").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"kpis": kpisMatcher(),
				"activities": map[string]any{
					"invoices":  []any{},
					"customers": []any{},
				},
				"charts": map[string]any{
					"monthlyRevenue": []any{},
					"leadConversion": []any{},
				},
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		empty, err := newERPClient(config).Dashboard(ctx)
		if err != nil {
			return fmt.Errorf("empty dashboard: %w", err)
		}
		if empty.Activities.Invoices == nil || len(empty.Activities.Invoices) != 0 {
			return fmt.Errorf("expected an empty invoice activity list, got %+v", empty.Activities.Invoices)
		}
		if empty.KPIs.Invoices.PaymentRate != 0 {
			return fmt.Errorf("expected a zero payment rate, got %v", empty.KPIs.Invoices.PaymentRate)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestDashboardContract_Seeded(t *testing.T) {
	pact := newPact(t)

	pact.AddInteraction().
		Given(pacttest.StateSeeded).
		UponReceiving("a dashboard request with recent activity").
		WithRequest("GET", "/api/analytics/dashboard").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"kpis": kpisMatcher(),
				"activities": matchers.Map{
					"invoices":  matchers.ArrayMinLike(activityMatcher("invoice", "Invoice INV-0001"), 1),
					"customers": matchers.ArrayMinLike(activityMatcher("customer", "New customer"), 1),
				},
				"charts": matchers.Map{
					"monthlyRevenue": matchers.Like([]any{}),
					"leadConversion": matchers.ArrayMinLike(matchers.Map{
						"status": matchers.Like("NEW"),
						"_count": matchers.Map{"status": matchers.Like(1)},
						"_sum":   matchers.Map{"value": matchers.Like(15000)},
					}, 1),
				},
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		seeded, err := newERPClient(config).Dashboard(ctx)
		if err != nil {
			return fmt.Errorf("seeded dashboard: %w", err)
		}
		if len(seeded.Activities.Invoices) == 0 || len(seeded.Activities.Customers) == 0 {
			return fmt.Errorf("expected recent activity after seeding")
		}
		return nil
	})
	require.NoError(t, err)
}

func TestAuthContract(t *testing.T) {
	pact := newPact(t)

	pact.AddInteraction().
		Given(pacttest.StateUserExists).
		UponReceiving("a login with valid credentials").
		WithRequest("POST", "/api/auth/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleLoginPayload())
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"user": matchers.Map{
					"id":        matchers.Like("5f1c7d0e-9a4b-4c3e-8f21-6d0b7e2a9c11"),
					"email":     matchers.S(pacttest.UserEmail),
					"firstName": matchers.S(pacttest.UserFirstName),
					"lastName":  matchers.S(pacttest.UserLastName),
					"role":      matchers.Term("USER", "ADMIN|MANAGER|ACCOUNTANT|SALES|USER"),
				},
				"token":     matchers.Like("eyJhbGciOiJIUzI1NiJ9.e30.signature"),
				"expiresAt": matchers.Like("2026-10-20T09:30:00Z"),
				"message":   matchers.S("Login successful"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateUserExists).
		UponReceiving("a login with a wrong password").
		WithRequest("POST", "/api/auth/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{"email": pacttest.UserEmail, "password": "not-the-password"})
		}).
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/unauthorized"),
				"title":  matchers.S("Unauthorized"),
				"status": matchers.Like(http.StatusUnauthorized),
				"detail": matchers.S("Invalid email or password"),
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newERPClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		login, err := client.Login(ctx, pacttest.UserEmail, pacttest.UserPassword)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if login.Token == "" {
			return fmt.Errorf("expected a token")
		}

		if _, err := client.Login(ctx, pacttest.UserEmail, "not-the-password"); err == nil {
			return fmt.Errorf("expected 401 for a wrong password")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusUnauthorized {
			return fmt.Errorf("expected 401, got %d", apiErr.Status())
		}
		return nil
	})
	require.NoError(t, err)
}

type erpClient struct {
	baseURL    string
	httpClient *http.Client
}

func newERPClient(config pactconsumer.MockServerConfig) *erpClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &erpClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *erpClient) Dashboard(ctx context.Context) (*dashboard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/analytics/dashboard", nil)
	if err != nil {
		return nil, err
	}
	var payload dashboard
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *erpClient) Login(ctx context.Context, email, password string) (*loginResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var payload loginResponse
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *erpClient) do(req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
