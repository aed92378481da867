package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/models/dtos"
	"campus-hub/agora/internal/providers"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := dtos.APIResponse[T]{
		Status:    "success",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := dtos.APIResponse[any]{
		Status:    "error",
		Timestamp: time.Now().UTC(),
		Error:     message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// statusForError maps typed store and upstream errors onto HTTP statuses
func statusForError(err error) int {
	var domainErr *constants.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case constants.ErrCodeConflict:
			return http.StatusConflict
		case constants.ErrCodeValidation:
			return http.StatusBadRequest
		case constants.ErrCodeForbidden:
			return http.StatusForbidden
		}
	}

	var providerErr *providers.ProviderError
	if errors.As(err, &providerErr) {
		switch providerErr.Code {
		case constants.ErrCodeResourceNotFound:
			return http.StatusNotFound
		case constants.ErrCodeAuthConfig, constants.ErrCodeAuthenticationFailed:
			return http.StatusServiceUnavailable
		case constants.ErrCodeRateLimited:
			return http.StatusTooManyRequests
		default:
			return http.StatusBadGateway
		}
	}

	return http.StatusInternalServerError
}
