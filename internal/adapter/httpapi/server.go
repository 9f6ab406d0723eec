package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/shop-gateway/internal/config"
	"github.com/example/shop-gateway/internal/domain"
	"github.com/example/shop-gateway/internal/usecase"
	"github.com/gorilla/mux"
)

// Deps — юзкейсы и конфигурация, нужные HTTP-слою.
type Deps struct {
	Cfg            config.Config
	Gateway        domain.ShipmentGateway
	PaymentHook    usecase.ReconcilePaymentWebhook
	ShipmentHook   usecase.ReconcileShipmentWebhook
	Rates          usecase.QuoteRates
	CreateShipment usecase.CreateShipment
	CreateInvoice  usecase.CreateInvoice
	GetInvoice     usecase.GetInvoice
}

type Server struct {
	Router *mux.Router
	deps   Deps
}

func NewServer(d Deps) *Server {
	s := &Server{Router: mux.NewRouter(), deps: d}
	r := s.Router
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/webhooks/payment", s.handlePaymentWebhook).Methods(http.MethodPost)
	r.HandleFunc("/api/webhooks/shipment", s.handleShipmentWebhook).Methods(http.MethodPost)
	r.HandleFunc("/api/shipping/rates", s.handleRates).Methods(http.MethodPost)
	r.HandleFunc("/api/shipping/shipments", s.handleCreateShipment).Methods(http.MethodPost)
	r.HandleFunc("/api/shipping/areas", s.handleAreas).Methods(http.MethodGet)
	r.HandleFunc("/api/payments/invoices", s.handleCreateInvoice).Methods(http.MethodPost)
	r.HandleFunc("/api/payments/invoices/{id}", s.handleGetInvoice).Methods(http.MethodGet)
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeUpstreamError — ошибки провайдера идут наружу с его статусом и
// сообщением, транспортные — как 502.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var perr *domain.ProviderError
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.As(err, &perr):
		writeError(w, perr.StatusCode, perr.Message)
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
