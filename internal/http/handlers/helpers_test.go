package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("team x: %w", padel.ErrNotFound), http.StatusNotFound},
		{padel.ErrTiedSet, http.StatusBadRequest},
		{padel.ErrUnsupportedBracketSize, http.StatusBadRequest},
		{padel.ErrCategoryFull, http.StatusConflict},
		{padel.ErrDownstreamDecided, http.StatusConflict},
		{padel.ErrSidesNotAssigned, http.StatusUnprocessableEntity},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestWriteErrorHidesInternalErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, errors.New("connection refused: 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.3")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"Grupo A"}`},
		{name: "empty", body: ``, wantErr: "must not be empty"},
		{name: "syntax", body: `{"name":`, wantErr: "invalid input"},
		{name: "wrong type", body: `{"name":3}`, wantErr: `field "name"`},
		{name: "unknown field", body: `{"title":"x"}`, wantErr: "unknown field"},
		{name: "two values", body: `{"name":"a"}{"name":"b"}`, wantErr: "single JSON value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := readJSON(httptest.NewRecorder(), req, &p)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Grupo A", p.Name)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, padel.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?count=4&bad=-1", nil)

	n, err := queryInt(req, "count", 8)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = queryInt(req, "missing", 8)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = queryInt(req, "bad", 8)
	assert.ErrorIs(t, err, padel.ErrInvalidInput)
}
