package validation

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/veldt-io/graphql/types"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Validate returns the shared constraint engine.
func Validate() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Constraint is an input value validator driven by a validator/v10 tag
// expression, e.g. "min=3,max=10" or "email".
type Constraint struct {
	Tag string
}

func (c Constraint) Validate(value interface{}) string {
	if err := Validate().Var(value, c.Tag); err != nil {
		return fmt.Sprintf("value %v does not satisfy constraint %q", value, c.Tag)
	}
	return ""
}

// IntRange accepts integers between min and max inclusive.
func IntRange(min, max int64) types.InputValueValidator {
	return Constraint{Tag: fmt.Sprintf("min=%d,max=%d", min, max)}
}

// StringMinLength accepts strings of at least n bytes.
func StringMinLength(n int) types.InputValueValidator {
	return Constraint{Tag: fmt.Sprintf("min=%d", n)}
}

// StringMaxLength accepts strings of at most n bytes.
func StringMaxLength(n int) types.InputValueValidator {
	return Constraint{Tag: fmt.Sprintf("max=%d", n)}
}

var _ types.InputValueValidator = Constraint{}
