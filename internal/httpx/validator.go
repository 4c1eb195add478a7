package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"bookreview/internal/apperr"
)

// ValidationMessage is the top-level message of every validation failure.
const ValidationMessage = "Validation error"

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report JSON names ("coverImage") rather than Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

// ValidateStruct checks s against its `validate` tags and returns one entry
// per failing field.
func ValidateStruct(s any) []apperr.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []apperr.FieldError{{Message: err.Error()}}
	}

	out := make([]apperr.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, apperr.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// Validate is ValidateStruct returning a Validation error, or nil.
func Validate(s any) error {
	if fields := ValidateStruct(s); len(fields) > 0 {
		return apperr.Validation(ValidationMessage, fields...)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "notblank":
		return capitalize(field) + " is required"
	case "email":
		return "Invalid email format"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", capitalize(field), param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", capitalize(field), param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DecodeJSON decodes the request body into dst. An empty body leaves dst
// untouched so that struct validation reports the missing fields.
func DecodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperr.Validation(ValidationMessage, apperr.FieldError{
			Field:   typeErr.Field,
			Message: typeMessage(typeErr),
		})
	case errors.As(err, &maxErr):
		return apperr.Validation("Request body too large")
	default:
		return apperr.Validation("Invalid request body")
	}
}

func typeMessage(e *json.UnmarshalTypeError) string {
	switch e.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if strings.HasPrefix(e.Value, "number") {
			return fmt.Sprintf("%s must be an integer", e.Field)
		}
		return fmt.Sprintf("%s must be a number", e.Field)
	case reflect.String:
		return fmt.Sprintf("%s must be a string", e.Field)
	default:
		return fmt.Sprintf("%s has an invalid type", e.Field)
	}
}

// BindJSON decodes the request body into dst and validates it.
func BindJSON(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return Validate(dst)
}
