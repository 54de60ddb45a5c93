package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldErr struct{ fields map[string]string }

func (e fieldErr) Error() string                  { return "validation failed" }
func (e fieldErr) FieldErrors() map[string]string { return e.fields }

func TestRespondErrorStatus(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"not found":    {fmt.Errorf("get: %w", ErrNotFound), http.StatusNotFound},
		"duplicate":    {fmt.Errorf("create: %w", ErrDuplicate), http.StatusConflict},
		"conflict":     {fmt.Errorf("delete: %w", ErrConflict), http.StatusConflict},
		"validation":   {fmt.Errorf("%w: bad date", ErrValidation), http.StatusBadRequest},
		"unauthorized": {ErrUnauthorized, http.StatusUnauthorized},
		"unknown":      {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("dial tcp 10.0.0.1:5432: refused"))
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}

func TestRespondErrorFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fieldErr{fields: map[string]string{"nome_item": "is required"}})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Validation Failed", problem.Title)
	assert.Equal(t, map[string]string{"nome_item": "is required"}, problem.Errors)
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"nome"`
		Keep string `json:"keep"`
	}
	target.Keep = "old"

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nome":"Furadeira"}`))
	require.NoError(t, DecodeJSON(req, &target))
	assert.Equal(t, "Furadeira", target.Name)
	assert.Equal(t, "old", target.Keep)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, DecodeJSON(req, &target), ErrValidation)
}
