package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidFilename(t *testing.T) {
	tests := map[string]string{
		"small.gif":         "small.gif",
		"  my cat.png ":     "my_cat.png",
		"../../etc/passwd":  "passwd",
		`C:\photos\dog.jpg`: "dog.jpg",
		"weird$name!.jpeg":  "weirdname.jpeg",
		"":                  "upload",
		"..":                "upload",
		"кот.gif":           "кот.gif",
		"мой кот №2.png":    "мой_кот_2.png",
		"тест":              "тест",
		"$$$.gif":           "upload.gif",
		".hidden":           "upload.hidden",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, ValidFilename(input))
		})
	}
}

func TestLocalSaveExistsDelete(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir(), "/media")
	require.NoError(t, err)

	ok, err := l.Exists(ctx, "posts/a.gif")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Save(ctx, "posts/a.gif", strings.NewReader("GIF89a"), "image/gif"))

	ok, err = l.Exists(ctx, "posts/a.gif")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := os.ReadFile(filepath.Join(l.Root, "posts", "a.gif"))
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data))
	assert.Equal(t, "/media/posts/a.gif", l.URL("posts/a.gif"))

	require.NoError(t, l.Delete(ctx, "posts/a.gif"))
	require.NoError(t, l.Delete(ctx, "posts/a.gif"))
	ok, _ = l.Exists(ctx, "posts/a.gif")
	assert.False(t, ok)
}

func TestLocalRejectsEscapingKeys(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)

	assert.Error(t, l.Save(context.Background(), "../outside.txt", strings.NewReader("x"), ""))
	_, err = l.Exists(context.Background(), "/etc/passwd")
	assert.Error(t, err)
}

func TestAvailableKeyAddsSuffixOnCollision(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)

	key, err := AvailableKey(ctx, l, "posts", "small.gif")
	require.NoError(t, err)
	assert.Equal(t, "posts/small.gif", key)

	require.NoError(t, l.Save(ctx, key, strings.NewReader("x"), ""))

	second, err := AvailableKey(ctx, l, "posts", "small.gif")
	require.NoError(t, err)
	assert.NotEqual(t, key, second)
	assert.True(t, strings.HasPrefix(second, "posts/small_"))
	assert.True(t, strings.HasSuffix(second, ".gif"))
}

func TestSaveUpload(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "small.gif")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("GIF89a"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/create/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	header := req.MultipartForm.File["image"][0]

	key, err := SaveUpload(ctx, l, header, "posts")
	require.NoError(t, err)
	assert.Equal(t, "posts/small.gif", key)

	_, err = SaveUpload(ctx, nil, header, "posts")
	assert.Error(t, err)
}

func TestURLWithoutBackend(t *testing.T) {
	original := Current()
	Use(nil)
	defer Use(original)

	assert.Equal(t, "", URL("posts/a.gif"))
}

func TestS3URL(t *testing.T) {
	s := &S3{bucket: "yatube-media", region: "eu-west-3"}
	assert.Equal(t, "https://yatube-media.s3.eu-west-3.amazonaws.com/posts/a.gif", s.URL("posts/a.gif"))
}
