package domain

import "errors"

var (
	MessageSuccessUploadImage = "image uploaded successfully"
	MessageFailedUploadImage  = "failed to upload image"
	MessageSuccessDeleteImage = "image deleted successfully"
	MessageFailedDeleteImage  = "failed to delete image"

	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrImageRequired      = errors.New("image file is required")
)

type (
	UploadImageResponse struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
)
