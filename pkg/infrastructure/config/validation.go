package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vsinha/botplan/pkg/domain/entities"
)

// Validator checks configuration tags and reports fields by their config key
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the resourcechain tag registered
func NewValidator() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(configKey)
	if err := validate.RegisterValidation("resourcechain", validResourceChain); err != nil {
		panic(fmt.Sprintf("register resourcechain validation: %v", err))
	}
	return &Validator{validate: validate}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// configKey names a field by its mapstructure key, matching the YAML file and
// the BOTPLAN_ environment variables
func configKey(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// validResourceChain accepts a resource list that forms a chain
func validResourceChain(fl validator.FieldLevel) bool {
	names, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	_, err := entities.ParseChain(names)
	return err == nil
}

// formatValidationError converts validator errors into one line per field
func (v *Validator) formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		// Drop the root struct name: Config.search.horizon -> search.horizon
		_, key, _ := strings.Cut(e.Namespace(), ".")
		messages = append(messages, fmt.Sprintf("%s %s (value: '%v')", key, describe(e), e.Value()))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return fmt.Sprintf("is required when %s", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "resourcechain":
		return fmt.Sprintf("must name distinct resources, %d to %d of them",
			entities.MinResources, entities.MaxResources)
	default:
		return fmt.Sprintf("failed validation: %s", e.Tag())
	}
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
