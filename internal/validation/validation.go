// Package validation wraps go-playground/validator so that failures come
// back as apperr validation errors naming the JSON field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"artmarket-admin/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates v and reports the first failing field.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation(err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperr.MissingField(fe.Field())
	case "email":
		return &apperr.Error{Kind: apperr.KindValidation, Field: fe.Field(), Message: "Invalid email format"}
	case "oneof":
		return &apperr.Error{Kind: apperr.KindValidation, Field: fe.Field(),
			Message: fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())}
	case "min", "gte":
		return &apperr.Error{Kind: apperr.KindValidation, Field: fe.Field(),
			Message: fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())}
	default:
		return &apperr.Error{Kind: apperr.KindValidation, Field: fe.Field(),
			Message: fmt.Sprintf("%s is invalid", fe.Field())}
	}
}
