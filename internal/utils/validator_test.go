// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type refHolder struct {
	Ref string `validate:"catalog_ref"`
}

type sizeHolder struct {
	Size string `validate:"garment_size"`
}

func TestCatalogRefValidation(t *testing.T) {
	valid := []string{"TC-001", "ORD-042", "TC-1234", "STORE-999"}
	for _, ref := range valid {
		assert.NoError(t, ValidateStruct(&refHolder{Ref: ref}), ref)
	}

	invalid := []string{"tc-001", "TC001", "TC-01", "T-001", "TC-", "TOOLONGX-001", "TC-001x"}
	for _, ref := range invalid {
		assert.Error(t, ValidateStruct(&refHolder{Ref: ref}), ref)
	}
}

func TestGarmentSizeValidation(t *testing.T) {
	for _, size := range []string{"S", "M", "L", "XL"} {
		assert.NoError(t, ValidateStruct(&sizeHolder{Size: size}), size)
	}

	for _, size := range []string{"s", "XXL", "XS", ""} {
		assert.Error(t, ValidateStruct(&sizeHolder{Size: size}), size)
	}
}

func TestGetValidationErrors(t *testing.T) {
	type form struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	errs := GetValidationErrors(ValidateStruct(&form{Email: "nope"}))

	assert.Len(t, errs, 2)
	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
}

func TestGetValidationErrorsNil(t *testing.T) {
	assert.Empty(t, GetValidationErrors(nil))
}
