package shared

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentbrasil/rentbrasil/internal/platform/httpx"
)

type sampleDraft struct {
	Name  string          `json:"nome" validate:"required"`
	Email string          `json:"email" validate:"omitempty,email"`
	Rate  decimal.Decimal `json:"preco_diario" validate:"gt=0"`
	Stars int             `json:"estrelas" validate:"min=1,max=5"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(sampleDraft{Email: "nope", Rate: decimal.Zero, Stars: 9})
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpx.ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["nome"])
	assert.Equal(t, "must be a valid email", verr.Fields["email"])
	assert.Equal(t, "must be greater than 0", verr.Fields["preco_diario"])
	assert.Equal(t, "must be at most 5", verr.Fields["estrelas"])
}

func TestValidateAcceptsValidDraft(t *testing.T) {
	require.NoError(t, Validate(sampleDraft{Name: "Furadeira", Rate: decimal.RequireFromString("12.5"), Stars: 4}))
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "x", "a": "y"}}
	assert.Equal(t, "validation failed: a: y; b: x", err.Error())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 31)
	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, 10, ListFilters{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 0, ListFilters{}.Offset())
}
