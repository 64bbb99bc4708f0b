package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}

func TestLocalStorage_UploadFile(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root)

	key, err := store.UploadFile(context.Background(), "pic.png", fileHeader(t, "pic.png", pngHeader), "images", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "images/pic.png", key)
	assert.Equal(t, "images/pic.png", store.GetPublicLinkKey(key))

	written, err := os.ReadFile(filepath.Join(root, "images", "pic.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, written)
}

func TestLocalStorage_LastWriteWins(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root)
	second := append(append([]byte{}, pngHeader...), 0x01, 0x02)

	_, err := store.UploadFile(context.Background(), "dup.png", fileHeader(t, "dup.png", pngHeader), "images", AllowImage...)
	require.NoError(t, err)
	_, err = store.UploadFile(context.Background(), "dup.png", fileHeader(t, "dup.png", second), "images", AllowImage...)
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(root, "images", "dup.png"))
	require.NoError(t, err)
	assert.Equal(t, second, written)
}

func TestLocalStorage_RejectsNonImage(t *testing.T) {
	store := NewLocalStorage(t.TempDir())

	_, err := store.UploadFile(context.Background(), "notes.txt", fileHeader(t, "notes.txt", []byte("just text")), "images", AllowImage...)
	assert.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestLocalStorage_StripsDirectories(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root)

	key, err := store.UploadFile(context.Background(), "../../evil.png", fileHeader(t, "evil.png", pngHeader), "images", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "images/evil.png", key)
	assert.FileExists(t, filepath.Join(root, "images", "evil.png"))
}

func TestLocalStorage_DeleteMissingFile(t *testing.T) {
	store := NewLocalStorage(t.TempDir())
	assert.NoError(t, store.DeleteFile(context.Background(), "images/missing.png"))
}

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted string
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = *params.Key
	return &s3.DeleteObjectOutput{}, nil
}

func TestAwsS3_UploadFile(t *testing.T) {
	client := &fakeS3{}
	store := &awsS3{client: client, bucket: "recipes", region: "eu-central-1"}

	key, err := store.UploadFile(context.Background(), "pic.png", fileHeader(t, "pic.png", pngHeader), "images", AllowImage...)
	require.NoError(t, err)

	assert.Equal(t, "images/pic.png", key)
	assert.Equal(t, "recipes", *client.put.Bucket)
	assert.Equal(t, "image/png", *client.put.ContentType)
	assert.Equal(t, pngHeader, client.body)
	assert.Equal(t, "https://recipes.s3.eu-central-1.amazonaws.com/images/pic.png", store.GetPublicLinkKey(key))

	require.NoError(t, store.DeleteFile(context.Background(), key))
	assert.Equal(t, "images/pic.png", client.deleted)
}

func TestAwsS3_UploadFailure(t *testing.T) {
	store := &awsS3{client: &fakeS3{err: errors.New("network down")}, bucket: "recipes", region: "eu-central-1"}

	_, err := store.UploadFile(context.Background(), "pic.png", fileHeader(t, "pic.png", pngHeader), "images", AllowImage...)
	assert.ErrorContains(t, err, "network down")
}
