// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// product and order identifiers look like "TC-001" / "ORD-042"
var refPattern = regexp.MustCompile(`^[A-Z]{2,6}-\d{3,}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("catalog_ref", validateCatalogRef)
	validate.RegisterValidation("garment_size", validateGarmentSize)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCatalogRef(fl validator.FieldLevel) bool {
	return refPattern.MatchString(fl.Field().String())
}

func validateGarmentSize(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "S", "M", "L", "XL":
		return true
	}
	return false
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "catalog_ref":
		return e.Field() + " must look like PREFIX-001"
	case "garment_size":
		return e.Field() + " must be one of S, M, L, XL"
	default:
		return e.Field() + " is invalid"
	}
}
