package common

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// NewValidator returns a validator that understands the struct tags used by
// the extractor boundary types. Besides the built-in rules it registers
// "notblank", which rejects strings that are empty after trimming.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}
