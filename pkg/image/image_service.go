package image

import (
	"context"
	"errors"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"recipe-book/domain"
	"recipe-book/entities"
	"recipe-book/internal/logging"
	"recipe-book/internal/utils/storage"
)

const folder = "images"

type (
	ImageService interface {
		UploadImage(ctx context.Context, file *multipart.FileHeader) (domain.UploadImageResponse, error)
		DeleteImage(ctx context.Context, name string, role string) error
	}

	imageService struct {
		storage storage.FileStorage
	}
)

func NewImageService(storage storage.FileStorage) ImageService {
	return &imageService{storage: storage}
}

// UploadImage stores the file under its original base name. A second upload with
// the same name overwrites the first.
func (s *imageService) UploadImage(ctx context.Context, file *multipart.FileHeader) (domain.UploadImageResponse, error) {
	if file == nil {
		return domain.UploadImageResponse{}, domain.ErrImageRequired
	}

	name := baseName(file.Filename)
	if name == "" {
		return domain.UploadImageResponse{}, domain.ErrImageRequired
	}

	key, err := s.storage.UploadFile(ctx, name, file, folder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return domain.UploadImageResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.UploadImageResponse{}, err
	}

	logging.Info().Str("key", key).Int64("size", file.Size).Msg("image stored")

	return domain.UploadImageResponse{
		Name: name,
		URL:  s.storage.GetPublicLinkKey(key),
	}, nil
}

// DeleteImage removes a stored image. Only admins may delete; a missing file is not an error.
func (s *imageService) DeleteImage(ctx context.Context, name string, role string) error {
	if role != entities.RoleAdmin {
		return domain.ErrUserNotAllowed
	}

	name = baseName(name)
	if name == "" {
		return domain.ErrImageRequired
	}

	key := path.Join(folder, name)
	if err := s.storage.DeleteFile(ctx, key); err != nil {
		return err
	}

	logging.Info().Str("key", key).Msg("image deleted")
	return nil
}

func baseName(fileName string) string {
	name := filepath.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
