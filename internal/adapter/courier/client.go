package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/shop-gateway/internal/adapter/cache"
	"github.com/example/shop-gateway/internal/domain"
)

const tokenPath = "/auth/generate-token"

// Client — клиент курьерского шлюза. Приоритет аутентификации:
// статический APIToken, затем bearer-токен по client credentials
// (кэшируется в Tokens), затем basic по логину/паролю. Без учётных данных
// запросы уходят неаутентифицированными — это допустимо, отказ вернёт провайдер.
type Client struct {
	BaseURL      string
	Mock         bool
	APIToken     string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Origin       domain.Address
	CategoryID   string
	HTTP         *http.Client
	Tokens       *cache.TokenCache
}

func New(c Client) *Client {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 10 * time.Second}
	}
	if c.Tokens == nil {
		c.Tokens = cache.NewTokenCache()
	}
	return &c
}

// invoke — единая точка вызова провайдера: (метод, путь, тело) ->
// (статус, тело ответа). Эндпоинт выпуска токена не аутентифицируется,
// иначе получение токена требовало бы токен.
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
	if !strings.HasPrefix(path, tokenPath) {
		if err := c.authorize(ctx, req); err != nil {
			return 0, nil, err
		}
	}
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

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	switch {
	case c.APIToken != "":
		req.Header.Set("Authorization", "Bearer "+c.APIToken)
	case c.ClientID != "" && c.ClientSecret != "":
		tok, err := c.bearerToken(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	case c.Username != "" || c.Password != "":
		req.SetBasicAuth(c.Username, c.Password)
	}
	return nil
}

func (c *Client) bearerToken(ctx context.Context) (string, error) {
	return c.Tokens.Refresh(time.Now(), func() (string, time.Duration, error) {
		status, raw, err := c.invoke(ctx, http.MethodPost, tokenPath, map[string]string{
			"client_id":     c.ClientID,
			"client_secret": c.ClientSecret,
		})
		if err != nil {
			return "", 0, err
		}
		if status < 200 || status >= 300 {
			return "", 0, providerError(status, raw)
		}
		var out struct {
			Token       string `json:"token"`
			AccessToken string `json:"access_token"`
			ExpiresIn   int64  `json:"expires_in"`
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", 0, err
		}
		tok := out.Token
		if tok == "" {
			tok = out.AccessToken
		}
		if tok == "" {
			return "", 0, errors.New("token endpoint returned no token")
		}
		return tok, time.Duration(out.ExpiresIn) * time.Second, nil
	})
}

// providerError приводит тело ошибки провайдера к одному сообщению:
// строка, JSON с message/error, либо сырой JSON целиком.
func providerError(status int, raw []byte) *domain.ProviderError {
	msg := strings.TrimSpace(string(raw))
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		if m, _ := body["message"].(string); m != "" {
			msg = m
		} else if m, _ := body["error"].(string); m != "" {
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

var _ domain.ShipmentGateway = (*Client)(nil)
