package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Tomlord1122/task-manager/internal/service"
)

const maxBodyBytes = 1 << 20

// errorResponse carries the text under both error and message; browser
// clients read message.
type errorResponse struct {
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func newErrorResponse(code int, message string) errorResponse {
	return errorResponse{Error: message, Message: message, StatusCode: code}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// decodeJSON reads a single JSON object into dst and writes a 400 describing
// what was wrong with the body. It reports whether decoding succeeded.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err == nil {
		if decoder.More() {
			respondWithError(w, http.StatusBadRequest, "Request body must only contain a single JSON object")
			return false
		}
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset))
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))
	case errors.Is(err, io.EOF):
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
	case errors.As(err, &maxBytesError):
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body must not be larger than %d bytes", maxBytesError.Limit))
	default:
		s.httpLog.WithError(err).Error("decoding request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
	}
	return false
}

// decodeAndValidate decodes the body and runs the struct's validate tags.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !s.decodeJSON(w, r, dst) {
		return false
	}
	return s.validateStruct(w, dst)
}

func (s *Server) validateStruct(w http.ResponseWriter, v any) bool {
	err := s.validate.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		s.httpLog.WithError(err).Error("validating request")
		respondWithError(w, http.StatusBadRequest, "Invalid request")
		return false
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	body := newErrorResponse(http.StatusBadRequest, "Validation failed")
	body.Fields = fields
	respondWithJSON(w, http.StatusBadRequest, body)
	return false
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// parseID reads a positive integer URL parameter.
func parseID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads the optional limit and offset query parameters.
func (s *Server) parsePagination(w http.ResponseWriter, r *http.Request) (service.Pagination, bool) {
	var page service.Pagination
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &page.Limit}, {"offset", &page.Offset}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("%s must be an integer", p.name))
			return page, false
		}
		*p.dst = n
	}
	if !s.validateStruct(w, page) {
		return page, false
	}
	return page, true
}

// respondWithServiceError maps a service failure onto its HTTP status.
func (s *Server) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		respondWithError(w, statusFor(svcErr.Kind), svcErr.Message)
		return
	}
	s.httpLog.WithError(err).WithField("path", r.URL.Path).Error("unexpected service error")
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, newErrorResponse(code, message))
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response","message":"Internal server error preparing response","statusCode":500}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
