package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/crucial707/newsdesk/internal/validation"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type bodyKey struct{}

// ValidationFailedMessage is the "error" value of every 400 produced by ValidateBody.
const ValidationFailedMessage = "Validation failed"

// ValidateBody decodes the JSON request body into a T, validates it and makes
// it available to the next handler through Body. Every violated constraint is
// reported in a single 400 response. onReject runs for each request answered
// with that 400.
func ValidateBody[T any](v *validation.Validator, onReject ...func(*http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reject := func(details []string) {
				for _, fn := range onReject {
					fn(r)
				}
				writeValidationError(w, details)
			}

			fields, err := decodeObject(r.Body)
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					writeJSONError(w, "request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				reject([]string{"Request body must be valid JSON"})
				return
			}

			var payload T
			details, skip := validation.Decode(fields, &payload)

			msgs, err := v.Struct(payload, skip...)
			if err != nil {
				slog.Error("validate request body",
					"request_id", chimw.GetReqID(r.Context()),
					"path", r.URL.Path,
					"error", err)
				writeJSONError(w, "internal server error", http.StatusInternalServerError)
				return
			}
			details = append(details, msgs...)
			if len(details) > 0 {
				reject(details)
				return
			}

			ctx := context.WithValue(r.Context(), bodyKey{}, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var (
	errNotObject    = errors.New("body is not a JSON object")
	errTrailingData = errors.New("unexpected data after JSON object")
)

// decodeObject reads exactly one JSON object from body.
func decodeObject(body io.Reader) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(body)
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errNotObject
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, err
	}
	return fields, nil
}

// Body returns the payload decoded by ValidateBody[T].
func Body[T any](ctx context.Context) (T, bool) {
	payload, ok := ctx.Value(bodyKey{}).(T)
	return payload, ok
}

func writeValidationError(w http.ResponseWriter, details []string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":   ValidationFailedMessage,
		"details": details,
	})
}
