package validators

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("media_type", mediaTypeValidation)
	validate.RegisterAlias("port", "gte=0,lte=65535")
	return validate
}

func mediaTypeValidation(fl validator.FieldLevel) bool {
	_, _, err := mime.ParseMediaType(fl.Field().String())
	return err == nil
}

// ValidateStruct validates v and folds every field error into a single error, sorted by field name.
func ValidateStruct(ctx context.Context, v interface{}) error {
	err := NewValidator().StructCtx(ctx, v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("validating %T: %w", v, err)
	}

	fieldErrors := ParseValidationError(vErrs)
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %v", field, fieldErrors[field]))
	}
	return fmt.Errorf("invalid %T: %s", v, strings.Join(msgs, "; "))
}

func ParseValidationError(errors validator.ValidationErrors) map[string]interface{} {
	fieldErrors := make(map[string]interface{})
	for _, err := range errors {
		fieldErrors[getFieldName(err)] = msgForFieldError(err)
	}
	return fieldErrors
}

// msgForFieldError gets the message for the given validation error (tag).
func msgForFieldError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "media_type":
		return fmt.Sprintf("Invalid media type %q", fieldError.Value())
	case "port":
		return fmt.Sprintf("Invalid port %v, expected a value between 0 and 65535", fieldError.Value())
	case "gte":
		return fmt.Sprintf("Should be greater than or equal %s", fieldError.Param())
	case "lte":
		return fmt.Sprintf("Should be less than or equal %s", fieldError.Param())
	default:
		return "Invalid value"
	}
}

func getFieldName(fieldError validator.FieldError) string {
	// Ex.: structName.FieldName, structName.nestedStructName.nestedStructFieldName, structName.nestedStructName.nestedStructName....
	namespace := strings.Split(fieldError.StructNamespace(), ".")
	length := len(namespace)
	if length == 2 {
		return lcFirst(namespace[1])
	}

	if length > 2 {
		return fmt.Sprintf("%s.%s", lcFirst(namespace[length-2]), lcFirst(namespace[length-1]))
	}

	return lcFirst(namespace[0])
}

// lcFirst lowers the case of the first letter of the given string.
//
//	Example: Address -> address
func lcFirst(str string) string {
	for index, letter := range str {
		return string(unicode.ToLower(letter)) + str[index+1:]
	}
	return ""
}
