package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed struct constraint, named after the field's JSON key.
type FieldError struct {
	Field string
	Tag   string
	Param string
	Kind  reflect.Kind
}

// Message renders the constraint for display next to the offending form field.
func (e FieldError) Message() string {
	textual := e.Kind == reflect.String
	switch e.Tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if textual {
			return fmt.Sprintf("must be at least %s characters", e.Param)
		}
		return fmt.Sprintf("must be at least %s", e.Param)
	case "max":
		if textual {
			return fmt.Sprintf("must be at most %s characters", e.Param)
		}
		return fmt.Sprintf("must be at most %s", e.Param)
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param)
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param)
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(e.Param), ", ")
	default:
		return "is invalid"
	}
}

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return field.Name
			default:
				return name
			}
		})
	})
	return instance
}

// Struct validates v against its `validate` tags. The returned slice follows field
// order; the error is reserved for misuse such as passing a non-struct.
func Struct(v any) ([]FieldError, error) {
	err := engine().Struct(v)
	if err == nil {
		return nil, nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil, err
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return nil, err
	}
	result := make([]FieldError, 0, len(failures))
	for _, failure := range failures {
		result = append(result, FieldError{
			Field: failure.Field(),
			Tag:   failure.Tag(),
			Param: failure.Param(),
			Kind:  failure.Kind(),
		})
	}
	return result, nil
}
