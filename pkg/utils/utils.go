package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ConvertFileToBase64(file multipart.File) (string, error)
	StripDataURIPrefix(imageBase64 string) (data string, mimeType string)
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 5 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxFileSize {
		return errors.New("file size exceeds limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return errors.New("uploaded file is not an image")
	}

	return nil
}

func (u *utils) ConvertFileToBase64(file multipart.File) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	base64Encoded := base64.StdEncoding.EncodeToString(fileBytes)
	return base64Encoded, nil
}

// StripDataURIPrefix removes a "data:image/...;base64," prefix when present
// and reports the declared MIME type. Bare base64 payloads are assumed to be
// JPEG, matching what camera uploads send.
func (u *utils) StripDataURIPrefix(imageBase64 string) (string, string) {
	const defaultMIME = "image/jpeg"

	if !strings.HasPrefix(imageBase64, "data:") {
		return imageBase64, defaultMIME
	}

	comma := strings.Index(imageBase64, ",")
	if comma == -1 {
		return imageBase64, defaultMIME
	}

	header := imageBase64[len("data:"):comma]
	data := imageBase64[comma+1:]

	mimeType := defaultMIME
	if semi := strings.Index(header, ";"); semi != -1 {
		header = header[:semi]
	}
	if strings.HasPrefix(header, "image/") {
		mimeType = header
	}

	return data, mimeType
}
