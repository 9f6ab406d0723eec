package courier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/shop-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratesOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"pricing":[]}`))
}

func TestAuthorizeAPITokenWins(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		ratesOK(w)
	}))
	defer srv.Close()

	c := New(Client{
		BaseURL:  srv.URL,
		APIToken: "static-token",
		ClientID: "id", ClientSecret: "secret",
		Username: "u", Password: "p",
	})
	_, err := c.GetRates(context.Background(), domain.RateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer static-token", got)
}

func TestAuthorizeBearerExchange(t *testing.T) {
	tokenCalls := 0
	var rateAuth, tokenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/generate-token":
			tokenCalls++
			tokenAuth = r.Header.Get("Authorization")
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "cid", body["client_id"])
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"issued","expires_in":600}`))
		default:
			rateAuth = r.Header.Get("Authorization")
			ratesOK(w)
		}
	}))
	defer srv.Close()

	c := New(Client{BaseURL: srv.URL, ClientID: "cid", ClientSecret: "cs"})
	_, err := c.GetRates(context.Background(), domain.RateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer issued", rateAuth)
	assert.Empty(t, tokenAuth, "token endpoint itself must not be authenticated")

	_, err = c.GetRates(context.Background(), domain.RateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, tokenCalls, "second call must reuse cached token")
}

func TestAuthorizeBasicFallback(t *testing.T) {
	var user, pass string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, hasAuth = r.BasicAuth()
		ratesOK(w)
	}))
	defer srv.Close()

	c := New(Client{BaseURL: srv.URL, Username: "user", Password: "pass"})
	_, err := c.GetRates(context.Background(), domain.RateRequest{})
	require.NoError(t, err)
	require.True(t, hasAuth)
	assert.Equal(t, "user", user)
	assert.Equal(t, "pass", pass)
}

func TestAuthorizeUnauthenticatedAllowed(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		ratesOK(w)
	}))
	defer srv.Close()

	c := New(Client{BaseURL: srv.URL})
	_, err := c.GetRates(context.Background(), domain.RateRequest{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProviderErrorUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json message", `{"message":"area not found"}`, "area not found"},
		{"json error", `{"error":"bad request"}`, "bad request"},
		{"plain string", `upstream exploded`, "upstream exploded"},
		{"json without message", `{"code":42}`, `{"code":42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := providerError(http.StatusUnprocessableEntity, []byte(tt.body))
			assert.Equal(t, http.StatusUnprocessableEntity, perr.StatusCode)
			assert.Equal(t, tt.want, perr.Message)
		})
	}
}
