package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"recipe-book/domain"
	"recipe-book/internal/api/presenters"
	"recipe-book/internal/logging"
)

// errorStatus maps service errors to HTTP status codes. Unknown errors are 500.
func errorStatus(err error) int {
	var fieldErrors domain.FieldErrors
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &fieldErrors):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess),
		errors.Is(err, domain.ErrAccountNotVerified),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrCredentialsNotMatch),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrIngredientExists),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidImageFormat),
		errors.Is(err, domain.ErrImageRequired),
		errors.Is(err, domain.ErrAccountVerified),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, domain.ErrInvalidID
	}
	return uint(id), nil
}

// failResponse writes the error envelope for err. Internal errors are logged and
// their details are not sent to the client.
func failResponse(c *fiber.Ctx, message string, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		logging.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(message)
		err = errors.New(domain.MessageFailedProcessRequest)
	}
	return presenters.ErrorResponse(c, status, message, err)
}
