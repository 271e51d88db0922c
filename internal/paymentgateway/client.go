package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the payment processor's intent API. The processor is an
// external collaborator: this layer sends an amount and hands the opaque
// client secret back to the frontend, nothing more. No retries; a gateway
// failure surfaces to the caller immediately.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// Intent is the subset of the processor's payment-intent resource this
// service consumes.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(config.APIURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CreateIntent registers a payment intent for amountCents and returns it
// with the client secret the frontend needs to confirm the payment.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64) (*Intent, error) {
	if amountCents < 1 {
		return nil, fmt.Errorf("amount must be at least 1 cent, got %d", amountCents)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", "usd")
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build payment intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment intent request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("payment processor rejected intent",
			"status_code", resp.StatusCode,
			"body", string(body))
		return nil, fmt.Errorf("payment processor returned status %d", resp.StatusCode)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode payment intent response: %w", err)
	}

	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("payment processor returned no client secret")
	}

	c.logger.Info("payment intent created",
		"intent_id", intent.ID,
		"amount_cents", amountCents)

	return &intent, nil
}
