package handlers

import (
	"github.com/gofiber/fiber/v2"

	"recipe-book/domain"
	"recipe-book/internal/api/presenters"
	"recipe-book/internal/middleware"
	"recipe-book/pkg/image"
)

type (
	ImageHandler interface {
		UploadImage(c *fiber.Ctx) error
		DeleteImage(c *fiber.Ctx) error
	}

	imageHandler struct {
		imageService image.ImageService
	}
)

func NewImageHandler(imageService image.ImageService) ImageHandler {
	return &imageHandler{imageService: imageService}
}

func (h *imageHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.FieldErrors{
			"image": "no file was submitted",
		})
	}

	res, err := h.imageService.UploadImage(c.Context(), file)
	if err != nil {
		return failResponse(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *imageHandler) DeleteImage(c *fiber.Ctx) error {
	_, role, _ := middleware.CurrentUser(c)

	if err := h.imageService.DeleteImage(c.Context(), c.Params("name"), role); err != nil {
		return failResponse(c, domain.MessageFailedDeleteImage, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
