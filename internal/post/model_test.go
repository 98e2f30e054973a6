package post

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArthurDelaporte/Yatube-Back/internal/core"
)

// smallGIF is a 2x1 GIF image.
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestPostString(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "short text", text: "Hello", want: "Hello"},
		{name: "exactly fifteen", text: "123456789012345", want: "123456789012345"},
		{name: "long text", text: "Тестовый пост для проверки", want: "Тестовый пост д"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Post{Text: tt.text}.String())
		})
	}
}

func formContext(t *testing.T, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func multipartContext(t *testing.T, text, filename string, content []byte) *gin.Context {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", text))
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.Request = req
	return c
}

func TestCommentFormBind(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{name: "text given", body: url.Values{"text": {"Nice post"}}.Encode(), valid: true},
		{name: "text missing", body: "", valid: false},
		{name: "blank text", body: url.Values{"text": {"   "}}.Encode(), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &CommentForm{}
			assert.Equal(t, tt.valid, form.Bind(formContext(t, tt.body)))
			if !tt.valid {
				assert.Equal(t, []string{core.MsgRequired}, form.Errors["text"])
			}
		})
	}
}

func TestPostFormBindWithoutGroup(t *testing.T) {
	form := &PostForm{}
	ok := form.Bind(formContext(t, url.Values{"text": {"  Fresh post  "}}.Encode()), true)

	assert.True(t, ok)
	assert.Equal(t, "Fresh post", form.Text)
	assert.Nil(t, form.GroupID())
	assert.Nil(t, form.Image())
}

func TestPostFormRejectsGarbageGroup(t *testing.T) {
	form := &PostForm{}
	ok := form.Bind(formContext(t, url.Values{"text": {"x"}, "group": {"not-a-number"}}.Encode()), false)

	assert.False(t, ok)
	assert.Equal(t, []string{msgInvalidGroup}, form.Errors["group"])
}

func TestPostFormImage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		valid    bool
	}{
		{name: "gif", filename: "small.gif", content: smallGIF, valid: true},
		{name: "text disguised as image", filename: "fake.gif", content: []byte("just some text"), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &PostForm{}
			ok := form.Bind(multipartContext(t, "With picture", tt.filename, tt.content), true)

			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				require.NotNil(t, form.Image())
				assert.Equal(t, tt.filename, form.Image().Filename)
			} else {
				assert.Equal(t, []string{msgInvalidImage}, form.Errors["image"])
			}
		})
	}
}
