package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	dniPattern   = regexp.MustCompile(`^\d{7,8}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return dniPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range errs {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

func ValidDNI(s string) bool   { return dniPattern.MatchString(s) }
func ValidPhone(s string) bool { return phonePattern.MatchString(s) }
