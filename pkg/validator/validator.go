package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	personNameRegex = regexp.MustCompile(`^[a-zA-Z-' ]+$`)
	phoneRegex      = regexp.MustCompile(`^(?:\+234|0)[789]\d{9}$`)
	departmentRegex = regexp.MustCompile(`^[a-zA-Z-' ,.()&]+$`)
)

// FieldError is one invalid request field as returned to API clients.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

// Register adds the custom tags to v and reports fields by their json name.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("personname", matches(personNameRegex))
	_ = v.RegisterValidation("ngphone", matches(phoneRegex))
	_ = v.RegisterValidation("department", matches(departmentRegex))
	_ = v.RegisterValidation("studylevel", validateStudyLevel)
}

// RegisterGin installs the custom tags on gin's binding engine.
func RegisterGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// validateStudyLevel accepts 100 through 700 in steps of 100.
func validateStudyLevel(fl validator.FieldLevel) bool {
	var n int64
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = fl.Field().Int()
	default:
		return false
	}
	return n >= 100 && n <= 700 && n%100 == 0
}

// FieldErrors flattens err into per-field messages. It returns nil when err
// carries no validation errors.
func FieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe), Type: "field_error"})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gt", "gte":
		return "Value is too small"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "personname":
		return "May contain only letters, spaces, hyphens and apostrophes"
	case "ngphone":
		return "Must be a valid Nigerian phone number"
	case "department":
		return "Contains invalid characters"
	case "studylevel":
		return "Must be one of 100, 200, 300, 400, 500, 600 or 700"
	}
	return "Invalid value"
}
