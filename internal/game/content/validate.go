package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their YAML key so messages match the content files.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		validate = v
	})
	return validate
}

// Validate checks the `validate` struct tags of rec.
//
// Precondition: rec must be a pointer to a struct.
// Postcondition: Returns nil if every constraint holds, or an error listing each violation.
func Validate(rec any) error {
	err := validatorInstance().Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describe(e))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func describe(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, e.Param(), fmt.Sprint(e.Value()))
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be > %s", field, e.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, e.Tag())
	}
}
