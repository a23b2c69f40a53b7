package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// writeText writes s followed by a newline as text/plain.
func writeText(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(s + "\n")); err != nil {
		slog.Debug("text write failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeInternal logs err under op and answers 500 without leaking details.
func writeInternal(w http.ResponseWriter, op string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("error", err.Error()))
	slog.Error(op+" failed", attrs...)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}
