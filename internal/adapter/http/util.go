package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"fitlog/internal/domain"
)

// Error codes carried in error responses.
const (
	codeValidation       = "VALIDATION_FAILED"
	codeInvalidJSON      = "INVALID_JSON"
	codeNotFound         = "NOT_FOUND"
	codeConflict         = "CONFLICT"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeRateLimited      = "RATE_LIMITED"
	codeUnavailable      = "UNAVAILABLE"
	codeInternal         = "INTERNAL_ERROR"
)

// defaultReportDays is the look-back window when a range is not given.
const defaultReportDays = 7

type errorDetail struct {
	Code      string                  `json:"code"`
	Message   string                  `json:"message"`
	Fields    []domain.FieldViolation `json:"fields,omitempty"`
	RequestID string                  `json:"requestId,omitempty"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, fields []domain.FieldViolation) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message, Fields: fields}})
}

// writeServiceError maps domain errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	var ce *domain.ConflictError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, codeValidation, "validation failed", ve.Violations)
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, codeNotFound, nf.Error(), nil)
	case errors.As(err, &ce):
		writeError(w, http.StatusConflict, codeConflict, ce.Error(), nil)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeInternalError(w, r)
	}
}

// writeInternalError writes a 500 carrying the request ID so the failure can
// be found in the logs.
func writeInternalError(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{
		Code:      codeInternal,
		Message:   "internal error",
		RequestID: requestID(r.Context()),
	}})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// decodeBody parses the request body into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := parseJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON, err.Error(), nil)
		return false
	}
	return true
}

// pathID reads the {id} URL parameter, writing a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeServiceError(w, r, domain.NewValidationError("id", "ID must be a positive integer"))
		return 0, false
	}
	return id, true
}

// hasRange reports whether the request names either end of a time range.
func hasRange(r *http.Request) bool {
	q := r.URL.Query()
	return q.Get("start") != "" || q.Get("end") != ""
}

// parseRange reads the start and end query parameters as RFC 3339 timestamps
// or YYYY-MM-DD dates. A missing end means now and a missing start means
// seven days before end. A date-only end covers that whole day. The result
// is narrowed to the precision of stored timestamps.
func parseRange(r *http.Request, now time.Time) (domain.TimeRange, error) {
	q := r.URL.Query()
	end := now
	if v := q.Get("end"); v != "" {
		t, dateOnly, err := parseTime(v)
		if err != nil {
			return domain.TimeRange{}, domain.NewValidationError("end", "End must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - domain.StoragePrecision)
		}
		end = t
	}
	start := end.AddDate(0, 0, -defaultReportDays)
	if v := q.Get("start"); v != "" {
		t, _, err := parseTime(v)
		if err != nil {
			return domain.TimeRange{}, domain.NewValidationError("start", "Start must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		start = t
	}
	rng := domain.TimeRange{Start: start, End: end}.Stored()
	return rng, rng.Validate()
}

func parseTime(v string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	return t, true, err
}
