package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance.
func New() *Validate {
	return validator.New()
}

// NewWithTagNames creates a validator that reports fields by the name found in the given
// struct tag (e.g. "json" or "mapstructure") instead of the Go field name.
func NewWithTagNames(tag string) *Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Describe renders validation errors as a comma-separated list of "path (rule)" items,
// e.g. "labels[1] (required), config.max_aggregates_size (min=1)". Errors that are not
// validation errors are returned as is.
func Describe(err error) string {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}

	items := make([]string, 0, len(ve))
	for _, e := range ve {
		items = append(items, describeField(e))
	}
	return strings.Join(items, ", ")
}

func describeField(e FieldError) string {
	field := e.Field()
	// drop the root struct name: "Config.server.port" -> "server.port"
	if _, path, ok := strings.Cut(e.Namespace(), "."); ok {
		field = path
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof", "gte", "lte":
		return fmt.Sprintf("%s (%s=%s)", field, e.Tag(), e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, e.Tag())
	}
}
