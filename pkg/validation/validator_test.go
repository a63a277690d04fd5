package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string `json:"title" validate:"required,min=4,max=32"`
	Price int    `json:"price" validate:"min=0,max=10000000"`
	Role  string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

func TestToDetailsValidationErrors(t *testing.T) {
	v := validator.New()

	err := v.Struct(sample{Title: "ab", Price: -1, Role: "ROOT"})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Contains(t, details["Title"], "at least 4 characters")
	assert.Contains(t, details["Price"], "at least 0")
	assert.Contains(t, details["Role"], "USER, ADMIN")
}

func TestToDetailsRequired(t *testing.T) {
	v := validator.New()

	err := v.Struct(sample{})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["Title"])
}

func TestToDetailsNonValidationError(t *testing.T) {
	details := ToDetails(errors.New("boom"))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, details)
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}
