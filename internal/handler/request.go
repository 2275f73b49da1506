package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = time.DateOnly

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// =============================================================================
// Validation
// =============================================================================

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("disruptionstatus", validateDisruptionStatus)
}

func validateDisruptionStatus(fl validator.FieldLevel) bool {
	return domain.DisruptionStatus(fl.Field().String()).IsValid()
}

// validateRequest runs struct validation and converts failures into a
// domain.ValidationError keyed by JSON field path.
func validateRequest(op string, req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalid(op, err.Error())
	}

	ve := &domain.ValidationError{Op: op, Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ve.Fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return ve
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	case "uuid":
		return "must be a UUID"
	case "disruptionstatus":
		return "must be open, acknowledged or resolved"
	case "gt", "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// =============================================================================
// Decoding
// =============================================================================

// decodeJSON decodes a bounded JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return domain.Invalid(op, "Request body is empty")
		case errors.As(err, &maxErr):
			return domain.Invalid(op, "Request body is too large")
		default:
			return domain.Invalid(op, fmt.Sprintf("Malformed JSON: %v", err))
		}
	}
	if dec.More() {
		return domain.Invalid(op, "Request body must contain a single JSON object")
	}
	return nil
}

// parseDate parses an optional date. Empty input yields nil.
func parseDate(op, field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, domain.NewValidationError(op, field, "must be a date (YYYY-MM-DD)")
	}
	return &t, nil
}

// queryRange reads the required start and end query parameters.
func queryRange(r *http.Request, op string) (time.Time, time.Time, error) {
	q := r.URL.Query()
	ve := &domain.ValidationError{Op: op, Fields: map[string]string{}}

	start, err := parseDate(op, "start", q.Get("start"))
	if err != nil {
		ve.Fields["start"] = "must be a date (YYYY-MM-DD)"
	} else if start == nil {
		ve.Fields["start"] = "is required"
	}
	end, err := parseDate(op, "end", q.Get("end"))
	if err != nil {
		ve.Fields["end"] = "must be a date (YYYY-MM-DD)"
	} else if end == nil {
		ve.Fields["end"] = "is required"
	}

	if len(ve.Fields) > 0 {
		return time.Time{}, time.Time{}, ve
	}
	return *start, *end, nil
}

// pathUUID parses a UUID path value.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// splitList splits a comma-separated query value, dropping blanks.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// respondError routes validation errors to ValidationErrorResponse.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		ValidationErrorResponse(w, r, logger, err)
		return
	}
	ErrorResponse(w, r, logger, err)
}
