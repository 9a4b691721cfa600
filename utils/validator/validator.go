package validatorx

import (
	"regexp"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	v    *gpvalidator.Validate
	once sync.Once

	phonePattern = regexp.MustCompile(`^[0-9\-\+\(\)\s]+$`)
)

// Init initializes the validator singleton (idempotent)
func Init() {
	once.Do(func() {
		validate := gpvalidator.New()
		_ = validate.RegisterValidation("phone", isPhone)
		_ = validate.RegisterValidation("coordinate", isCoordinate)
		v = validate
	})
}

// ValidateVar validates a single value against a tag list, e.g. "required,email".
func ValidateVar(field interface{}, tag string) error {
	Init()
	return v.Var(field, tag)
}

// FailedTag returns the first failing tag of a validation error, or "" when err is not one.
func FailedTag(err error) string {
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return ""
	}
	return verrs[0].Tag()
}

// isPhone accepts digits, '+', '-', parentheses and whitespace.
func isPhone(fl gpvalidator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// isCoordinate accepts anything that parses as a decimal number.
func isCoordinate(fl gpvalidator.FieldLevel) bool {
	_, err := decimal.NewFromString(fl.Field().String())
	return err == nil
}
