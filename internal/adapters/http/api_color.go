package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/OliveiraNt/netbind/internal/application"
	"github.com/OliveiraNt/netbind/internal/domain"
	"github.com/OliveiraNt/netbind/internal/utils"

	"github.com/go-chi/chi/v5"
)

type colorList struct {
	Data []domain.Color `json:"data"`
}

// errorBody is the not-found sentinel {"error": true}. Message is only set
// for rejected requests.
type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Logger.Error("encode response failed", "err", err)
	}
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, errorBody{Error: true})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: true, Message: msg})
}

func (s *Server) apiListColors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, colorList{Data: s.colors.ListColors()})
}

func (s *Server) apiGetColor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, err := s.colors.GetColor(name)
	if err != nil {
		utils.Logger.Debug("api get color not found", "name", name)
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) apiCreateColor(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Logger.Warn("api create color bad json", "err", err)
		writeBadRequest(w, "invalid json: "+err.Error())
		return
	}
	c, err := s.colors.CreateColor(r.Context(), req)
	if err != nil {
		utils.Logger.Warn("api create color rejected", "err", err)
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) apiUpdateColor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req domain.UpdateColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Logger.Warn("api update color bad json", "name", name, "err", err)
		writeBadRequest(w, "invalid json: "+err.Error())
		return
	}
	c, err := s.colors.UpdateColor(r.Context(), name, req)
	if errors.Is(err, application.ErrColorNotFound) {
		utils.Logger.Debug("api update color not found", "name", name)
		writeNotFound(w)
		return
	}
	if err != nil {
		utils.Logger.Error("api update color failed", "name", name, "err", err)
		writeBadRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) apiDeleteColor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, err := s.colors.DeleteColor(r.Context(), name)
	if err != nil {
		utils.Logger.Debug("api delete color not found", "name", name)
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
