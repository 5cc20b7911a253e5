package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrNilWhenEmpty(t *testing.T) {
	ve := New()
	require.NoError(t, ve.Err())

	ve.Required("name", "  something  ")
	require.NoError(t, ve.Err())
}

func TestErrorMessageRendersFirstFailureAndCount(t *testing.T) {
	ve := New()
	ve.Add("name", "must be unique")
	assert.Equal(t, "name: must be unique", ve.Error())

	ve.Add("name", "must be at most 255 characters")
	ve.Add("price", "must be positive")
	assert.Equal(t, "name: must be unique (and 2 more errors)", ve.Error())
}

func TestErrIsMatchableWithAs(t *testing.T) {
	ve := New()
	ve.Required("link", "")
	err := ve.Err()
	require.Error(t, err)

	var target *Errors
	require.True(t, errors.As(err, &target))
	assert.True(t, target.Has("link"))
	assert.Equal(t, []string{"is required"}, target.Fields()["link"])
}

func TestSortedFieldsIsDeterministic(t *testing.T) {
	ve := New()
	ve.Add("b", "x")
	ve.Add("a", "y")
	ve.Add("c", "z")
	assert.Equal(t, []string{"a", "b", "c"}, ve.SortedFields())
}
