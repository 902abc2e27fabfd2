package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/openpaths/reentry-api/pkg/apierror"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for the domain enumerations.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=8")
		v.RegisterAlias("role", "oneof=job_seeker employer officer admin")
		v.RegisterAlias("category", "oneof=housing education health legal other")
	}
}

// ErrorFrom classifies a binding error into a taxonomy error:
// malformed JSON is BAD_REQUEST, schema violations are VALIDATION_ERROR
// with one message per violated field.
func ErrorFrom(err error) *apierror.Error {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apierror.BadRequest("invalid json payload")
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apierror.Validation(ToDetails(verrs))
	}

	return apierror.BadRequest("invalid payload")
}

// ToDetails converts validator.v10 errors into a field->message map
// suitable for the VALIDATION_ERROR details payload.
func ToDetails(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = formatFieldError(fe)
	}
	return out
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "len":
		return "must be exactly " + param + " characters long"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "pwd":
		return "must be at least 8 characters long"
	case "role":
		return "must be one of: job_seeker, employer, officer, admin"
	case "category":
		return "must be one of: housing, education, health, legal, other"
	default:
		if param != "" {
			return "failed validation '" + tag + "' with parameter '" + param + "'"
		}
		return "failed validation '" + tag + "'"
	}
}
