package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pulsefeed/pulse-server/cmd/models"
)

var validate = validator.New()

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError is the single place engine errors become status codes.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		WriteJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	WriteJSON(w, status, map[string]string{"error": err.Error()})
}

// DecodeAndValidate decodes a JSON body into v and runs struct validation.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.ErrInvalidArgument
	}
	if err := validate.Struct(v); err != nil {
		return models.ErrInvalidArgument
	}
	return nil
}

// ParseLimitOffset reads limit/offset query parameters, applying the given
// default page size. Negative values are rejected before reaching an engine.
func ParseLimitOffset(r *http.Request, defaultLimit int) (int, int, error) {
	limit := defaultLimit
	offset := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, models.ErrInvalidArgument
		}
		limit = v
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, models.ErrInvalidArgument
		}
		offset = v
	}
	return limit, offset, nil
}
