package stripe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/platform/resilience"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		SecretKey:      "sk_test_123",
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})
}

func TestClientCreateCheckoutSession_BuildsFormRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Fatalf("unexpected authorization header: %s", got)
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if form.Get("mode") != "payment" {
			t.Fatalf("unexpected mode: %s", form.Get("mode"))
		}
		if form.Get("client_reference_id") != "user-1" {
			t.Fatalf("unexpected client reference: %s", form.Get("client_reference_id"))
		}
		if form.Get("line_items[0][price_data][unit_amount]") != "50000" {
			t.Fatalf("unexpected unit amount: %s", form.Get("line_items[0][price_data][unit_amount]"))
		}
		if form.Get("line_items[0][price_data][currency]") != "inr" {
			t.Fatalf("unexpected currency: %s", form.Get("line_items[0][price_data][currency]"))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"id":  "cs_test_1",
			"url": "https://checkout.stripe.test/cs_test_1",
		})
	}))
	defer srv.Close()

	session, err := newTestClient(srv).CreateCheckoutSession(context.Background(), usecase.CheckoutSessionInput{
		UserID: "user-1",
		Items: []usecase.CheckoutItem{{
			ProductName:  "Wallet Recharge",
			Currency:     "INR",
			PriceInCents: 50000,
			Quantity:     1,
		}},
		SuccessURL: "https://app.example/success",
		CancelURL:  "https://app.example/cancel",
	})
	if err != nil {
		t.Fatalf("create checkout session failed: %v", err)
	}

	if session.ID != "cs_test_1" {
		t.Fatalf("unexpected session id: %s", session.ID)
	}
	if session.URL != "https://checkout.stripe.test/cs_test_1" {
		t.Fatalf("unexpected session url: %s", session.URL)
	}
}

func TestClientGetSessionStatus_MapsStates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		status        string
		paymentStatus string
		want          usecase.SessionState
	}{
		{name: "paid session completes", status: "complete", paymentStatus: "paid", want: usecase.SessionStateCompleted},
		{name: "open session pends", status: "open", paymentStatus: "unpaid", want: usecase.SessionStatePending},
		{name: "complete but unpaid pends", status: "complete", paymentStatus: "unpaid", want: usecase.SessionStatePending},
		{name: "expired session fails", status: "expired", paymentStatus: "unpaid", want: usecase.SessionStateFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/checkout/sessions/cs_test_1" {
					t.Fatalf("unexpected path: %s", r.URL.Path)
				}
				w.Header().Set("Content-Type", "application/json")
				_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
					"id":                  "cs_test_1",
					"status":              tc.status,
					"payment_status":      tc.paymentStatus,
					"client_reference_id": "user-1",
					"amount_total":        50000,
					"currency":            "inr",
				})
			}))
			defer srv.Close()

			status, err := newTestClient(srv).GetSessionStatus(context.Background(), "cs_test_1")
			if err != nil {
				t.Fatalf("get session status failed: %v", err)
			}

			if status.State != tc.want {
				t.Fatalf("state = %s, want %s", status.State, tc.want)
			}
			if status.UserID != "user-1" {
				t.Fatalf("unexpected user id: %s", status.UserID)
			}
			if status.AmountInCents != 50000 {
				t.Fatalf("unexpected amount: %d", status.AmountInCents)
			}
		})
	}
}

func TestClientDoRequest_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"id":                  "cs_test_1",
			"status":              "complete",
			"payment_status":      "paid",
			"client_reference_id": "user-1",
			"amount_total":        1000,
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		SecretKey:      "sk_test_123",
		MaxRetries:     2,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	status, err := client.GetSessionStatus(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("get session status failed: %v", err)
	}
	if status.State != usecase.SessionStateCompleted {
		t.Fatalf("unexpected state: %s", status.State)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestClientDoRequest_ClientErrorsDoNotRetry(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		HTTPClient:     srv.Client(),
		BaseURL:        srv.URL,
		SecretKey:      "sk_test_123",
		MaxRetries:     3,
		Logger:         logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: false},
	})

	if _, err := client.GetSessionStatus(context.Background(), "cs_test_1"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}
