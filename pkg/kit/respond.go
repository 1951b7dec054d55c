package kit

import (
	"encoding/json"
	"net/http"
)

const (
	MsgMalformed        = "Invalid JSON or request format"
	MsgInternal         = "Internal server error"
	MsgNotFound         = "Resource not found"
	MsgMethodNotAllowed = "Method not allowed"
)

// ErrorResponse is the only error body the service emits.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, MsgNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
