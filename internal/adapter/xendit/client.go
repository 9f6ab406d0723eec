package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/shop-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// Client — клиент платёжного шлюза: HTTP Basic со статическим секретным
// ключом в роли логина, пустой пароль.
type Client struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func New(c Client) *Client {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	return &c
}

func (c *Client) invoke(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.BaseURL, "/")+path, rd)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.SecretKey, "")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, raw, nil
}

type invoiceBody struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	InvoiceURL string          `json:"invoice_url"`
	ExpiryDate *time.Time      `json:"expiry_date"`
}

// CreateInvoice — POST /v2/invoices. external_id инвойса строится как
// "order-<id заказа>", по нему вебхук позже восстановит заказ.
func (c *Client) CreateInvoice(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	payload := map[string]any{
		"external_id": "order-" + req.OrderID,
		"amount":      req.Amount.InexactFloat64(),
	}
	if req.Currency != "" {
		payload["currency"] = req.Currency
	}
	if req.PayerEmail != "" {
		payload["payer_email"] = req.PayerEmail
	}
	if req.Description != "" {
		payload["description"] = req.Description
	}
	status, raw, err := c.invoke(ctx, http.MethodPost, "/v2/invoices", payload)
	if err != nil {
		return domain.Invoice{}, err
	}
	if status < 200 || status >= 300 {
		return domain.Invoice{}, providerError(status, raw)
	}
	return parseInvoice(raw)
}

// GetInvoice — GET /v2/invoices/:id.
func (c *Client) GetInvoice(ctx context.Context, id string) (domain.Invoice, error) {
	status, raw, err := c.invoke(ctx, http.MethodGet, "/v2/invoices/"+id, nil)
	if err != nil {
		return domain.Invoice{}, err
	}
	if status < 200 || status >= 300 {
		return domain.Invoice{}, providerError(status, raw)
	}
	return parseInvoice(raw)
}

func parseInvoice(raw []byte) (domain.Invoice, error) {
	var body invoiceBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.Invoice{}, err
	}
	return domain.Invoice{
		ID:         body.ID,
		ExternalID: body.ExternalID,
		Status:     body.Status,
		Amount:     body.Amount,
		Currency:   body.Currency,
		InvoiceURL: body.InvoiceURL,
		ExpiryDate: body.ExpiryDate,
	}, nil
}

func providerError(status int, raw []byte) *domain.ProviderError {
	msg := strings.TrimSpace(string(raw))
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		if m, _ := body["message"].(string); m != "" {
			msg = m
		} else if m, _ := body["error_code"].(string); m != "" {
			msg = m
		} else if b, err := json.Marshal(body); err == nil {
			msg = string(b)
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &domain.ProviderError{StatusCode: status, Message: msg}
}

var _ domain.InvoiceGateway = (*Client)(nil)
