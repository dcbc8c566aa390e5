package utils

import (
	"errors"
	"fmt"
	"html"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	log "github.com/sirupsen/logrus"
	"github.com/truemail-rb/truemail-go"
	"skillswap-web/internal/schemas"
)

type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool
	policy      *bluemonday.Policy
}

var (
	instance      *Validator
	configuration *truemail.Configuration
	once          sync.Once
)

var usernamePattern = regexp.MustCompile(`^[\w.@+\-]+$`)

func GetValidator() *Validator {
	once.Do(func() {
		var err error
		configuration, err = truemail.NewConfiguration(truemail.ConfigurationAttr{
			VerifierEmail:         "no-reply@skillswap.local",
			ValidationTypeDefault: "regex",
		})
		if err != nil {
			log.Warn("Email verifier unavailable, falling back to format check: ", err)
		}

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: validateEmail,
			policy:      bluemonday.StrictPolicy(),
		}

		registerCustomValidators(instance)
	})

	return instance
}

func validateEmail(email string) bool {
	if configuration == nil {
		at := strings.LastIndex(email, "@")
		return at > 0 && at < len(email)-1
	}
	return truemail.IsValid(email, configuration)
}

func registerCustomValidators(v *Validator) {
	rules := map[string]validator.Func{
		"username_validation": usernameValidation,
		"password_validation": passwordValidation,
		"skill_name":          skillNameValidation,
		"email_format": func(fl validator.FieldLevel) bool {
			return v.VerifyEmail(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.Validate.RegisterValidation(tag, fn); err != nil {
			log.Errorf("Could not register validation %s: %v", tag, err)
		}
	}
}

func usernameValidation(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

// passwordValidation requires at least one letter and one digit.
func passwordValidation(fl validator.FieldLevel) bool {
	var letter, number bool

	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsNumber(r):
			number = true
		}
	}

	return letter && number
}

func skillNameValidation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// SanitizeString strips markup from free text.
func (v *Validator) SanitizeString(value string) string {
	return strings.TrimSpace(html.UnescapeString(v.policy.Sanitize(value)))
}

// SanitizeData strips markup from every string field tagged sanitize:"true".
// obj must be a pointer to a struct.
func (v *Validator) SanitizeData(obj interface{}) error {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return errors.New("sanitize: expected pointer to struct")
	}

	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).Tag.Get("sanitize") != "true" {
			continue
		}

		field := rv.Field(i)
		switch {
		case field.Kind() == reflect.String:
			field.SetString(v.SanitizeString(field.String()))
		case field.Kind() == reflect.Pointer && !field.IsNil() && field.Elem().Kind() == reflect.String:
			field.Elem().SetString(v.SanitizeString(field.Elem().String()))
		}
	}
	return nil
}

// ValidateStruct validates obj and converts failures into a VALIDATION_ERROR whose
// details list every offending field.
func (v *Validator) ValidateStruct(obj interface{}) *schemas.AppError {
	err := v.Validate.Struct(obj)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &schemas.AppError{
			Message: schemas.MessageValidationError,
			Code:    schemas.CodeValidationError,
		}
	}

	fields := ValidateFormData(validationErrors)
	return &schemas.AppError{
		Message: fields[0].Message,
		Code:    schemas.CodeValidationError,
		Details: fields,
	}
}

// ValidateFormData turns validator failures into user-friendly field errors.
func ValidateFormData(validationErrors validator.ValidationErrors) []schemas.FieldError {
	fields := make([]schemas.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, schemas.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", name)
	case "min":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s.", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters.", name, fe.Param())
	case "max":
		if isNumeric(fe.Kind()) {
			return fmt.Sprintf("%s must be no more than %s.", name, fe.Param())
		}
		return fmt.Sprintf("%s must be no more than %s characters.", name, fe.Param())
	case "email_format":
		return schemas.MessageInvalidEmail
	case "password_validation":
		return "Password must be at least 8 characters long and contain letters and numbers."
	case "eqfield":
		return "Passwords do not match."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", name, fe.Param())
	default:
		return fmt.Sprintf("%s format is invalid.", name)
	}
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
