// Package http is the message-ingress transport. It hands inbound chat
// text to the dialog handler and renders the resulting payload; the
// core itself never formats user-facing text.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"waterlog/internal/core"
	"waterlog/internal/middleware/trace"
	"waterlog/internal/services"
)

type Server struct {
	http.Server
	dialog *services.DialogHandler
}

func NewServer(addr string, dialog *services.DialogHandler) *Server {
	s := &Server{dialog: dialog}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/messages", s.handleMessage)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	tr := trace.NewMiddleware()

	s.Server = http.Server{
		Addr:           addr,
		Handler:        tr.Handler(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return s
}

// messageRequest is one inbound chat message. The user id is the chat
// platform's identifier, trusted as-is.
type messageRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

type messageResponse struct {
	Kind         string  `json:"kind"`
	Text         string  `json:"text"`
	RecordedML   int64   `json:"recorded_ml,omitempty"`
	TotalML      int64   `json:"total_ml,omitempty"`
	QuickAmounts []int64 `json:"quick_amounts_ml,omitempty"`
	TodayKeyword string  `json:"today_keyword,omitempty"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.UserID == 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	resp := s.dialog.HandleMessage(r.Context(), req.UserID, req.Text)

	// Unrecognized input has no response defined; the transport's
	// default is to stay silent.
	if resp.Kind == core.ResponseNone {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse(resp))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
