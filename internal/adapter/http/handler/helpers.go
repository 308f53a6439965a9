package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/gosar/internal/adapter/http/dto"
	"github.com/iho/gosar/internal/domain"
)

// writeSuccess writes a success envelope.
func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, status int, message string, errs []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// writeFieldErrors writes a 400 envelope carrying validation failures.
func writeFieldErrors(w http.ResponseWriter, fieldErrs []domain.FieldError) {
	errs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		errs[i] = fe.Error()
	}
	writeError(w, http.StatusBadRequest, "validation failed", errs)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReportFiled):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
