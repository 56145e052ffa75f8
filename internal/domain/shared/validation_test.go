package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("name", "BICEC"))

	err := Required("name", "   ")
	require.Error(t, err)
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, CodeValidation, de.Code)
	assert.Equal(t, "name", de.Field)
	assert.Equal(t, "name is required", de.Message)
}

func TestOneOf(t *testing.T) {
	assert.NoError(t, OneOf("color", color("red"), "red", "blue"))

	err := OneOf("color", color("green"), "red", "blue")
	require.Error(t, err)
	assert.Equal(t, "color must be one of: red, blue", err.Error())
}

func TestFirstError(t *testing.T) {
	first := errors.New("first")
	assert.NoError(t, FirstError(nil, nil))
	assert.Equal(t, first, FirstError(nil, first, errors.New("second")))
}

func TestDomainErrorIsMatchesByCode(t *testing.T) {
	err := NewNotFoundError("Bank")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
	assert.Equal(t, "Bank not found", err.Error())

	ref := NewReferenceError("Employee", "driverId")
	assert.True(t, errors.Is(ref, ErrNotFound))
	assert.Equal(t, "driverId", ref.Field)
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{Page: 0, PageSize: 500}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.NotNil(t, f.Filters)

	f = Filter{Page: 3, PageSize: 0}.Normalize()
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, 40, f.Offset())
}

func TestFilterWithDoesNotMutateOriginal(t *testing.T) {
	base := DefaultFilter().With("status", "active")
	derived := base.With("bankId", "x")

	assert.Len(t, base.Filters, 1)
	assert.Len(t, derived.Filters, 2)
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated[int](nil, 41, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.NotNil(t, p.Items)

	empty := NewPaginated([]int{}, 0, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
