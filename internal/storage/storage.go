package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Storage persists uploaded media under slash-separated keys such as
// "posts/cat.gif".
type Storage interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

var current Storage

func Use(s Storage) {
	current = s
}

func Current() Storage {
	return current
}

// URL resolves a stored key through the active backend. Empty keys stay empty.
func URL(key string) string {
	if key == "" || current == nil {
		return ""
	}
	return current.URL(key)
}

var unsafeChars = regexp.MustCompile(`[^-\p{L}\p{N}_.]`)

// ValidFilename keeps the uploaded name recognisable, letters of any script
// included, while dropping path components and punctuation.
func ValidFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	if strings.Trim(name, ".") == "" {
		return "upload"
	}
	if strings.HasPrefix(name, ".") {
		return "upload" + name
	}
	return name
}

// AvailableKey returns folder/name, or folder/name_<suffix>.ext when that key
// is already taken.
func AvailableKey(ctx context.Context, s Storage, folder, name string) (string, error) {
	name = ValidFilename(name)
	key := path.Join(folder, name)

	exists, err := s.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return key, nil
	}

	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 5; i++ {
		candidate := path.Join(folder, fmt.Sprintf("%s_%s%s", stem, uuid.New().String()[:7], ext))
		exists, err := s.Exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.New("no free storage key for " + name)
}

// SaveUpload stores a multipart file under folder and returns its key.
func SaveUpload(ctx context.Context, s Storage, header *multipart.FileHeader, folder string) (string, error) {
	if s == nil {
		return "", errors.New("storage not configured")
	}
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	key, err := AvailableKey(ctx, s, folder, header.Filename)
	if err != nil {
		return "", err
	}

	if err := s.Save(ctx, key, file, header.Header.Get("Content-Type")); err != nil {
		return "", err
	}
	return key, nil
}
