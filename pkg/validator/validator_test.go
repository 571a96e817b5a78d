package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `validate:"notblank"`
	Type string `validate:"omitempty,oneof=warehouse store"`
	Qty  int    `validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(&sample{Name: "Gudang", Type: "store", Qty: 1}))

	errs := ValidateStruct(&sample{Name: "   ", Type: "garage", Qty: 0})
	require.Len(t, errs, 3)
	assert.Equal(t, "sample.Name", errs[0].FailedField)
	assert.Equal(t, "notblank", errs[0].Tag)
	assert.Equal(t, "oneof", errs[1].Tag)
	assert.Equal(t, "warehouse store", errs[1].Value)
}

func TestFirstError(t *testing.T) {
	assert.NoError(t, FirstError(&sample{Name: "x", Qty: 2}))

	err := FirstError(&sample{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "validation failed: field 'sample.Qty' failed on tag 'gt'", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}
