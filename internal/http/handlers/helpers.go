package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-tournament/internal/padel"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

const maxBodyBytes = 1 << 20

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// readJSON decodes a single JSON value from the request body into dst.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("%w: badly-formed JSON at character %d", padel.ErrInvalidInput, syntaxError.Offset)
		case errors.As(err, &typeError):
			return fmt.Errorf("%w: wrong JSON type for field %q", padel.ErrInvalidInput, typeError.Field)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: body must not be empty", padel.ErrInvalidInput)
		default:
			return fmt.Errorf("%w: %s", padel.ErrInvalidInput, err.Error())
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must only contain a single JSON value", padel.ErrInvalidInput)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// statusOf maps a service error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, padel.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, padel.ErrInvalidInput),
		errors.Is(err, padel.ErrNoResult),
		errors.Is(err, padel.ErrTiedSet),
		errors.Is(err, padel.ErrSameTeam),
		errors.Is(err, padel.ErrNotEnoughTeams),
		errors.Is(err, padel.ErrUnsupportedBracketSize):
		return http.StatusBadRequest
	case errors.Is(err, padel.ErrConflict),
		errors.Is(err, padel.ErrCategoryFull),
		errors.Is(err, padel.ErrTeamHasMatches),
		errors.Is(err, padel.ErrSlotOccupied),
		errors.Is(err, padel.ErrSlotOwnedByAdvancement),
		errors.Is(err, padel.ErrDownstreamDecided),
		errors.Is(err, padel.ErrTeamNotInPool):
		return http.StatusConflict
	case errors.Is(err, padel.ErrSidesNotAssigned),
		errors.Is(err, padel.ErrNotEnoughQualifiers):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError answers with the status of err and a JSON error body.
// Unexpected errors are logged and hidden from the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		message = "the server encountered a problem and could not process your request"
	}
	writeJSON(w, status, map[string]string{"error": message})
}

// queryInt reads a positive integer query parameter, falling back to def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", padel.ErrInvalidInput, key)
	}
	return n, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", padel.ErrInvalidInput, fmt.Sprintf(format, args...))
}
