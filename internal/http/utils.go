package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/relasjon/crm/internal/domain"
	"github.com/relasjon/crm/pkg/logger"
)

// maxBodySize caps request bodies
const maxBodySize = 1 << 20

// WriteJSONError writes a failed result with the given message and status code
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, domain.Result[any]{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps a result code to its HTTP status
func StatusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeResult[T any](w http.ResponseWriter, okStatus int, res domain.Result[T]) {
	if res.Success {
		writeJSON(w, okStatus, res)
		return
	}
	writeJSON(w, StatusFor(res.Code), res)
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func readBody(w http.ResponseWriter, r *http.Request, log logger.Logger) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		log.WithField("error", err.Error()).Debug("Failed to read request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func decode(w http.ResponseWriter, body []byte, v interface{}, log logger.Logger) bool {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		log.WithField("error", err.Error()).Debug("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

type idRequest struct {
	ID string `json:"id"`
}

// queryInt returns the integer query parameter key, or 0 when absent or malformed
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func getByID[T any](param string, fn func(context.Context, string) domain.Result[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		id := r.URL.Query().Get(param)
		if id == "" {
			WriteJSONError(w, "Missing "+param, http.StatusBadRequest)
			return
		}
		writeResult(w, http.StatusOK, fn(r.Context(), id))
	}
}

func create[Req any](log logger.Logger, fn func(context.Context, *Req) domain.Result[domain.EntityRef]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		body, ok := readBody(w, r, log)
		if !ok {
			return
		}
		var req Req
		if !decode(w, body, &req, log) {
			return
		}
		writeResult(w, http.StatusCreated, fn(r.Context(), &req))
	}
}

// update decodes {"id": ..., <patch fields>}. Keys absent from the body
// leave the stored value unchanged.
func update[Patch any, T any](log logger.Logger, fn func(context.Context, string, *Patch) domain.Result[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		body, ok := readBody(w, r, log)
		if !ok {
			return
		}
		var ref idRequest
		var patch Patch
		if !decode(w, body, &ref, log) || !decode(w, body, &patch, log) {
			return
		}
		if ref.ID == "" {
			WriteJSONError(w, "Missing id", http.StatusBadRequest)
			return
		}
		writeResult(w, http.StatusOK, fn(r.Context(), ref.ID, &patch))
	}
}

func byIDAction(log logger.Logger, fn func(context.Context, string) domain.Result[domain.EntityRef]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		body, ok := readBody(w, r, log)
		if !ok {
			return
		}
		var ref idRequest
		if !decode(w, body, &ref, log) {
			return
		}
		if ref.ID == "" {
			WriteJSONError(w, "Missing id", http.StatusBadRequest)
			return
		}
		writeResult(w, http.StatusOK, fn(r.Context(), ref.ID))
	}
}
