package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/example/shop-gateway/internal/domain"
	"github.com/gorilla/mux"
)

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Cfg.PaymentsConfigured() {
		writeError(w, http.StatusNotImplemented, "payments not configured")
		return
	}
	var req domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inv, err := s.deps.CreateInvoice.Execute(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Cfg.PaymentsConfigured() {
		writeError(w, http.StatusNotImplemented, "payments not configured")
		return
	}
	inv, err := s.deps.GetInvoice.Execute(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
