package orders

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phonePattern allows digits, spaces, hyphens, plus and parentheses, seven or more in total.
var phonePattern = regexp.MustCompile(`^[\d\s\-+()]{7,}$`)

// rules is what the validator sees: the trimmed form. Notes carry no rule.
type rules struct {
	Name    string `json:"name" validate:"required,min=3"`
	Phone   string `json:"phone" validate:"required,phone"`
	Address string `json:"address" validate:"required,min=5"`
}

var messages = map[Field]map[string]string{
	FieldName: {
		"required": "name is required",
		"min":      "name must be at least 3 characters",
	},
	FieldPhone: {
		"required": "phone is required",
		"phone":    "phone must be a valid number (min. 7 digits)",
	},
	FieldAddress: {
		"required": "address is required",
		"min":      "address is too short",
	},
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidationErrors maps a field to its message. Fields without an error are absent.
type ValidationErrors map[Field]string

// Empty reports whether the form passed.
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Only keeps the errors for the given fields.
func (v ValidationErrors) Only(fields map[Field]bool) ValidationErrors {
	out := ValidationErrors{}
	for f, msg := range v {
		if fields[f] {
			out[f] = msg
		}
	}
	return out
}

// Details renders the errors as a string map for error envelopes.
func (v ValidationErrors) Details() map[string]string {
	out := make(map[string]string, len(v))
	for f, msg := range v {
		out[string(f)] = msg
	}
	return out
}

// Validate checks every field of the form and reports all failures at once.
// It is pure: the same form always yields the same result.
func Validate(form CustomerDetails) ValidationErrors {
	t := form.Trimmed()
	result := ValidationErrors{}

	err := formValidator.Struct(rules{Name: t.Name, Phone: t.Phone, Address: t.Address})
	if err == nil {
		return result
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// only reachable on a programming error in rules
		panic(err)
	}
	for _, fe := range fieldErrs {
		field := Field(fe.Field())
		if _, seen := result[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = string(field) + " is invalid"
		}
		result[field] = msg
	}
	return result
}
