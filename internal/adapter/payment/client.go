package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prizelab/giveawayd/internal/domain/model"
)

// ErrIntentNotFound indicates the provider doesn't know the reference.
var ErrIntentNotFound = errors.New("payment intent not found")

// TooManyRequestsError represents rate limiting signal from the provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations against the payment provider.
type Client interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency, idempotencyKey string) (*model.PaymentIntent, error)
	FetchIntent(ctx context.Context, reference string) (*model.PaymentIntent, error)
}

// HTTPClient implements Client via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type createRequest struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// intentResponse mirrors JSON payload from the provider.
type intentResponse struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

// NewHTTPClient creates HTTP payment client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateIntent registers a charge with the provider. The idempotency key
// makes client retries safe: the provider returns the original intent.
func (c *HTTPClient) CreateIntent(ctx context.Context, amount decimal.Decimal, currency, idempotencyKey string) (*model.PaymentIntent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/intents")

	payload, err := json.Marshal(createRequest{Amount: amount.String(), Currency: currency})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return decodeIntent(resp.Body)
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment intent creation failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payment provider error: %s", resp.Status)
	}
}

// FetchIntent queries the provider for intent status.
func (c *HTTPClient) FetchIntent(ctx context.Context, reference string) (*model.PaymentIntent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/intents/", reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return decodeIntent(resp.Body)
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrIntentNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment intent fetch failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payment provider error: %s", resp.Status)
	}
}

func decodeIntent(body io.Reader) (*model.PaymentIntent, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	var intent intentResponse
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, err
	}
	return &model.PaymentIntent{
		Reference: intent.Reference,
		Status:    model.PaymentIntentStatus(intent.Status),
		Amount:    intent.Amount,
		Currency:  intent.Currency,
	}, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
