package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/example/shop-gateway/internal/domain"
)

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Cfg.ShippingConfigured() {
		writeError(w, http.StatusNotImplemented, "shipping not configured")
		return
	}
	var req domain.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quotes, err := s.deps.Rates.Execute(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rates": quotes})
}

func (s *Server) handleCreateShipment(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Cfg.ShippingConfigured() {
		writeError(w, http.StatusNotImplemented, "shipping not configured")
		return
	}
	var req domain.CreateShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// известная ошибка вызывающей стороны: зона отправителя в роли зоны
	// получателя; отсекается до любого обращения к провайдеру
	if origin := s.deps.Cfg.Origin.AreaID; origin != "" && req.Destination.AreaID == origin {
		writeError(w, http.StatusBadRequest, "destination area_id equals origin area_id")
		return
	}
	created, err := s.deps.CreateShipment.Execute(r.Context(), req)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleAreas(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Cfg.ShippingConfigured() {
		writeError(w, http.StatusNotImplemented, "shipping not configured")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	areas, err := s.deps.Gateway.SearchAreas(r.Context(), query)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"areas": areas})
}
