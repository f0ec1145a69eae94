package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"retro-taskmaster/internal/repository"
	"retro-taskmaster/internal/service"
)

// errBadRequest marks undecodable bodies and path parameters.
var errBadRequest = errors.New("invalid request format")

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
		"data":   data,
	}); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
		message = "server error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"status": "error",
		"error":  message,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, repository.ErrSentinelCategory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, repository.ErrMalformedDate),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrReservedName):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrMasterNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConnectivity):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}
