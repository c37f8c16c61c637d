package payload

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report wire names ("trackList[0].id") rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// validateStruct runs struct validation and flattens failures into ErrInvalidPayload
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	root := reflect.Indirect(reflect.ValueOf(s)).Type().Name()
	problems := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		problems = append(problems, fieldPath(root, e)+" "+friendlyMessage(e))
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(problems, "; "))
}

// fieldPath drops the root struct name from the namespace. Generic roots
// ("ClubDTO[...MovieDTO]") contain dots, so the prefix is trimmed by name.
func fieldPath(root string, e validator.FieldError) string {
	return strings.TrimPrefix(e.Namespace(), root+".")
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
