package stripe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
	"github.com/pitchside/fantasy-cricket/internal/platform/resilience"
	"github.com/pitchside/fantasy-cricket/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultBaseURL       = "https://api.stripe.com"
	checkoutSessionsPath = "/v1/checkout/sessions"
)

var errStripeTransient = crerr.New("stripe transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	SecretKey      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the Stripe Checkout API. It implements
// usecase.PaymentGateway.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	secretKey      string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		secretKey:      strings.TrimSpace(cfg.SecretKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) CreateCheckoutSession(ctx context.Context, input usecase.CheckoutSessionInput) (usecase.CheckoutSession, error) {
	if len(input.Items) == 0 {
		return usecase.CheckoutSession{}, crerr.New("checkout requires at least one line item")
	}

	form := bytebufferpool.Get()
	defer bytebufferpool.Put(form)

	writeFormField(form, "mode", "payment")
	writeFormField(form, "client_reference_id", input.UserID)
	writeFormField(form, "success_url", input.SuccessURL)
	writeFormField(form, "cancel_url", input.CancelURL)
	for i, item := range input.Items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		writeFormField(form, prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
		writeFormField(form, prefix+"[price_data][currency]", strings.ToLower(item.Currency))
		writeFormField(form, prefix+"[price_data][unit_amount]", strconv.FormatInt(item.PriceInCents, 10))
		writeFormField(form, prefix+"[price_data][product_data][name]", item.ProductName)
		if item.ProductDescription != "" {
			writeFormField(form, prefix+"[price_data][product_data][description]", item.ProductDescription)
		}
	}

	var decoded checkoutSessionResponse
	if err := c.doRequest(ctx, http.MethodPost, checkoutSessionsPath, form.String(), &decoded); err != nil {
		return usecase.CheckoutSession{}, err
	}
	if decoded.ID == "" || decoded.URL == "" {
		return usecase.CheckoutSession{}, crerr.New("stripe returned an incomplete checkout session")
	}

	c.logger.InfoContext(ctx, "stripe checkout session created",
		"session_id", decoded.ID,
		"user_id", input.UserID,
	)

	return usecase.CheckoutSession{
		ID:  decoded.ID,
		URL: decoded.URL,
	}, nil
}

func (c *Client) GetSessionStatus(ctx context.Context, sessionID string) (usecase.SessionStatus, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return usecase.SessionStatus{}, crerr.New("session id is required")
	}

	var decoded checkoutSessionResponse
	path := checkoutSessionsPath + "/" + url.PathEscape(sessionID)
	if err := c.doRequest(ctx, http.MethodGet, path, "", &decoded); err != nil {
		return usecase.SessionStatus{}, err
	}

	return usecase.SessionStatus{
		State:         mapSessionState(decoded.Status, decoded.PaymentStatus),
		UserID:        decoded.ClientReferenceID,
		AmountInCents: decoded.AmountTotal,
		Reference:     decoded.ID,
		FailureReason: failureReason(decoded.Status, decoded.PaymentStatus),
	}, nil
}

func (c *Client) doRequest(ctx context.Context, method, path, body string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "stripe circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("stripe is temporarily unavailable: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.recordCircuitResult(lastErr)
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		err := c.doRequestOnce(ctx, method, path, body, target)
		if err == nil {
			c.recordCircuitResult(nil)
			return nil
		}
		lastErr = err
		if !crerr.Is(err, errStripeTransient) {
			c.recordCircuitResult(err)
			return err
		}
	}

	c.recordCircuitResult(lastErr)
	return lastErr
}

func (c *Client) doRequestOnce(ctx context.Context, method, path, body string, target any) error {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return crerr.Wrap(err, "create stripe request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", errStripeTransient, method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read stripe response: %v", errStripeTransient, err)
	}

	if resp.StatusCode/100 != 2 {
		if isRetryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: %s %s status=%d body=%s", errStripeTransient, method, path, resp.StatusCode, truncate(raw, 512))
		}
		return fmt.Errorf("stripe %s %s status=%d body=%s", method, path, resp.StatusCode, truncate(raw, 512))
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "unmarshal stripe response")
	}

	return nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && crerr.Is(err, errStripeTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

type checkoutSessionResponse struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	Status            string `json:"status"`
	PaymentStatus     string `json:"payment_status"`
	ClientReferenceID string `json:"client_reference_id"`
	AmountTotal       int64  `json:"amount_total"`
	Currency          string `json:"currency"`
}

func mapSessionState(status, paymentStatus string) usecase.SessionState {
	switch status {
	case "complete":
		if paymentStatus == "paid" || paymentStatus == "no_payment_required" {
			return usecase.SessionStateCompleted
		}
		return usecase.SessionStatePending
	case "open":
		return usecase.SessionStatePending
	case "expired":
		return usecase.SessionStateFailed
	default:
		return usecase.SessionStateFailed
	}
}

func failureReason(status, paymentStatus string) string {
	if status == "expired" {
		return "checkout session expired"
	}
	if status != "complete" && status != "open" {
		return fmt.Sprintf("unexpected session status %q (payment status %q)", status, paymentStatus)
	}
	return ""
}

func writeFormField(buf *bytebufferpool.ByteBuffer, key, value string) {
	if buf.Len() > 0 {
		_ = buf.WriteByte('&')
	}
	_, _ = buf.WriteString(url.QueryEscape(key))
	_ = buf.WriteByte('=')
	_, _ = buf.WriteString(url.QueryEscape(value))
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode/100 == 5
}

func truncate(raw []byte, limit int) string {
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
