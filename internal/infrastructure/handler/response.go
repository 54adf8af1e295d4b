package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/victoragudo/hotel-management-system/pkg/apperror"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

var (
	errInvalidID        = apperror.BadRequest("Id must be a positive integer")
	errInvalidBody      = apperror.BadRequest("Request body is not valid JSON")
	errInvalidDate      = apperror.BadRequest("Dates must use the format YYYY-MM-DD or RFC 3339")
	errInvalidQueryInt  = apperror.BadRequest("Query parameter must be an integer")
	errInvalidQueryNum  = apperror.BadRequest("Query parameter must be a number")
	errInvalidQueryBool = apperror.BadRequest("Query parameter must be true or false")
)

func writeJSON(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func writeSuccessResponse(w http.ResponseWriter, status int, data interface{}, meta interface{}) {
	writeJSON(w, status, APIResponse{Success: true, Data: data, Meta: meta})
}

func writeMessageResponse(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: message})
}

// writeErrorResponse maps domain errors to their status code. Anything that
// is not an apperror is logged and reported as a bare 500.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := apperror.StatusOf(err)
	var message string

	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Code == apperror.CodeInternal {
		logger.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			constants.RequestId, r.Header.Get("X-Request-ID"),
			"error", err,
		)
		message = "Internal server error"
	} else {
		message = appErr.Message
	}

	writeJSON(w, status, APIResponse{Success: false, Error: message})
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// decodeBody accepts an empty body when optional is set.
func decodeBody(r *http.Request, dst interface{}, optional bool) error {
	if r.Body == nil {
		if optional {
			return nil
		}
		return errInvalidBody
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && optional {
		return nil
	}
	if err != nil {
		return errInvalidBody
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(constants.DateFormat, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(constants.DateTimeFormat, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errInvalidDate
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errInvalidQueryInt
	}
	return &val, nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errInvalidQueryNum
	}
	return &val, nil
}

func queryBool(r *http.Request, key string) (*bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errInvalidQueryBool
	}
	return &val, nil
}

// queryIDs accepts repeated keys as well as comma separated values.
func queryIDs(r *http.Request, key string) ([]int64, error) {
	var ids []int64
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return nil, errInvalidID
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
