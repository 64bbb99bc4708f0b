package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"recipe-book/domain"
	"recipe-book/entities"
)

var (
	Validate     *validator.Validate
	validateOnce sync.Once
)

// InitValidator builds the shared validator with the custom tags used by request DTOs.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			field := fl.Field()
			if field.Kind() != reflect.String {
				return false
			}
			return strings.TrimSpace(field.String()) != ""
		})

		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			field := fl.Field()
			if field.Kind() != reflect.String {
				return false
			}
			return entities.RecipeCategory(field.String()).Valid()
		})

		Validate = v
	})
}

// ValidateStruct runs the shared validator and converts failures to domain.FieldErrors.
func ValidateStruct(s any) error {
	InitValidator()
	if err := Validate.Struct(s); err != nil {
		return ToFieldErrors(err)
	}
	return nil
}

// ToFieldErrors keys every failure by its JSON path, e.g. "ingredients[1].name".
// Errors that are not validator.ValidationErrors are returned unchanged.
func ToFieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fieldErrors := domain.FieldErrors{}
	for _, fe := range verrs {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		if _, exists := fieldErrors[key]; !exists {
			fieldErrors[key] = fieldMessage(fe)
		}
	}
	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "notblank":
		return "this field may not be blank"
	case "category":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(fe.Value()))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "email":
		return "enter a valid email address"
	case "numeric":
		return "a valid number is required"
	case "eqfield":
		return "passwords do not match"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
