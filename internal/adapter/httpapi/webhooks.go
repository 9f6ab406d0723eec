package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/example/shop-gateway/internal/domain"
)

// handlePaymentWebhook — колбэк платёжного провайдера. После прохождения
// токена ответ всегда успешный: частичный внутренний сбой не должен
// провоцировать шторм повторов, журнал событий остаётся для ручной сверки.
func (s *Server) handlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("x-callback-token")
	if s.deps.Cfg.PaymentWebhookToken == "" || token != s.deps.Cfg.PaymentWebhookToken {
		writeError(w, http.StatusUnauthorized, "invalid callback token")
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	headers, _ := json.Marshal(r.Header)
	if err := s.deps.PaymentHook.Execute(r.Context(), payload, headers); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// handleShipmentWebhook — трекинг-колбэк курьера; исторически токен
// принимается из двух заголовков.
func (s *Server) handleShipmentWebhook(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("x-webhook-token")
	if token == "" {
		token = r.Header.Get("x-callback-token")
	}
	if s.deps.Cfg.ShippingWebhookToken == "" || token != s.deps.Cfg.ShippingWebhookToken {
		writeError(w, http.StatusUnauthorized, "invalid webhook token")
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := s.deps.ShipmentHook.Execute(r.Context(), payload); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
