package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"recipe-book/domain"
)

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}

	ErrorBody struct {
		Status  bool               `json:"status"`
		Message string             `json:"message"`
		Error   string             `json:"error"`
		Errors  domain.FieldErrors `json:"errors,omitempty"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the error envelope. Field level validation errors are expanded under "errors".
func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	body := ErrorBody{
		Status:  false,
		Message: message,
	}
	if err != nil {
		body.Error = err.Error()

		var fieldErrors domain.FieldErrors
		if errors.As(err, &fieldErrors) {
			body.Error = domain.MessageFailedValidation
			body.Errors = fieldErrors
		}
	}
	return c.Status(code).JSON(body)
}
