package httputil

import (
	"encoding/json"
	"net/http"

	"hackportal/pkg/apperr"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Kind    string         `json:"kind,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError maps any error to its HTTP status via the apperr kind table.
func WriteError(w http.ResponseWriter, err error) error {
	e := apperr.As(err)
	return WriteJSON(w, e.StatusCode(), ErrorResponse{
		Error:   e.Message,
		Kind:    string(e.Kind),
		Details: e.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteAck(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, AckResponse{Success: true, Message: message})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
