// Package validator wraps go-playground struct validation behind a single
// call that reports failures as a field→tag map ready for an error response.
package validator

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate runs the struct's validate tags. It returns nil when every field
// passes, otherwise a map of field name to the first failed tag.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
