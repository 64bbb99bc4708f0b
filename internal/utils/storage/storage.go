package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

// FileStorage stores uploaded files under folder/fileName and hands back the object key.
type FileStorage interface {
	UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowType ...string) (string, error)
	DeleteFile(ctx context.Context, objectKey string) error
	GetPublicLinkKey(objectKey string) string
}

// detectContentType sniffs the upload content and checks it against allowType when given.
func detectContentType(file *multipart.FileHeader, allowType ...string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}

	if len(allowType) == 0 {
		return mtype.String(), nil
	}
	for _, allowed := range allowType {
		if mtype.Is(allowed) {
			return mtype.String(), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, mtype.String())
}

func objectKey(folder, fileName string) string {
	if folder == "" {
		return fileName
	}
	return folder + "/" + fileName
}
