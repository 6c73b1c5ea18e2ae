// Package payment talks to the PayPal Orders API. The gateway only creates
// provider orders in the settlement currency and captures them after the
// buyer approves in PayPal's own hosted flow; everything in between belongs
// to the provider.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"springjewels-storefront/internal/checkout"
)

type PayPalClient struct {
	baseURL  string
	clientID string
	secret   string
	httpc    *http.Client
	logger   *log.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewPayPal(baseURL, clientID, secret string, logger *log.Logger) *PayPalClient {
	return &PayPalClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		secret:   secret,
		httpc:    &http.Client{},
		logger:   logger,
	}
}

type createOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type purchaseUnit struct {
	Description string `json:"description,omitempty"`
	Amount      amount `json:"amount"`
}

type amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

// CreateOrder opens a provider order for the given settlement amount and
// returns its provider-side ID.
func (c *PayPalClient) CreateOrder(ctx context.Context, value, currency, description string) (string, error) {
	body := createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Description: description,
			Amount:      amount{CurrencyCode: currency, Value: value},
		}},
	}

	var resp orderResponse
	if err := c.post(ctx, "/v2/checkout/orders", body, &resp); err != nil {
		return "", fmt.Errorf("create payment order: %w", err)
	}
	return resp.ID, nil
}

// Capture settles an approved provider order.
func (c *PayPalClient) Capture(ctx context.Context, orderID string) (*checkout.Capture, error) {
	var resp orderResponse
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", orderID)
	if err := c.post(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("capture payment order %s: %w", orderID, err)
	}
	return &checkout.Capture{ID: resp.ID, Status: resp.Status, Payer: resp.Payer.EmailAddress}, nil
}

func (c *PayPalClient) post(ctx context.Context, path string, body, out interface{}) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<14))
		c.logger.Printf("paypal %s returned %d: %s", path, resp.StatusCode, raw)
		return fmt.Errorf("provider returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached client-credentials token, refreshing it a minute
// before expiry.
func (c *PayPalClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", form)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider auth: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider auth returned %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode provider auth: %w", err)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}
