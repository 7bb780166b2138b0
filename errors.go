package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// NotFoundError reports that a referenced board, list or card does not exist
// at the point of lookup.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field errors. It is always produced before any
// write has been issued.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "invalid request data"
	}
	return fmt.Sprintf("invalid request data: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
}

// ConflictError reports that a concurrent structural mutation held the lock
// on one of the order arrays involved. Nothing was mutated; the caller may retry.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UpstreamError reports a failure of the external text-generation service.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

type errorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// writeError maps the error taxonomy onto HTTP statuses and a JSON body.
func writeError(w http.ResponseWriter, err error) {
	var nf *NotFoundError
	var ve *ValidationError
	var ce *ConflictError
	var ue *UpstreamError
	switch {
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request data", Errors: ve.Errors})
	case errors.As(err, &ce):
		writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})
	case errors.As(err, &ue):
		zap.S().Errorf("upstream failure: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: ue.Message})
	default:
		zap.S().Errorf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorf("Error encoding response: %v", err)
	}
}
