// Package stripegw is a minimal client for the Stripe payment-intent API.
// Only intent creation is used; the card charge itself completes on the
// client side against the returned secret.
package stripegw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("stripegw: secret key is required")

const defaultBaseURL = "https://api.stripe.com"

// Options configures the Stripe gateway client.
type Options struct {
	SecretKey      string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Stripe payment-intent endpoint.
type Client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient builds a gateway client from options, applying defaults.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		secretKey:  opts.SecretKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Error        *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreatePaymentIntent creates a card payment intent in the given currency
// and returns its client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	if c.secretKey == "" {
		return "", ErrMissingAPIKey
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("stripegw: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stripegw: create intent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("stripegw: read response: %w", err)
	}

	var parsed intentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("stripegw: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		message := "gateway error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("gateway_message", message).
			Msg("payment intent creation failed")
		return "", fmt.Errorf("stripegw: %s (status %d)", message, resp.StatusCode)
	}
	if parsed.ClientSecret == "" {
		return "", errors.New("stripegw: response missing client secret")
	}
	return parsed.ClientSecret, nil
}
