package post

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/core"
	"github.com/ArthurDelaporte/Yatube-Back/internal/group"
)

const (
	msgInvalidGroup = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

type PostForm struct {
	Text  string `form:"text" binding:"required"`
	Group string `form:"group"`

	Errors core.FormErrors `form:"-"`
	image  *multipart.FileHeader
	group  *group.Group
}

type CommentForm struct {
	Text string `form:"text" binding:"required"`

	Errors core.FormErrors `form:"-"`
}

// Bind reads and validates the post form. withImage enables the upload field.
func (f *PostForm) Bind(c *gin.Context, withImage bool) bool {
	f.Errors = core.BindForm(c, f)

	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" && !f.Errors.Has("text") {
		f.Errors.Add("text", core.MsgRequired)
	}

	f.Group = strings.TrimSpace(f.Group)
	if f.Group != "" {
		f.group = lookupGroup(f.Group)
		if f.group == nil {
			f.Errors.Add("group", msgInvalidGroup)
		}
	}

	if withImage {
		header, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		case err != nil:
			f.Errors.Add("image", msgInvalidImage)
		case !isImage(header):
			f.Errors.Add("image", msgInvalidImage)
		default:
			f.image = header
		}
	}

	return len(f.Errors) == 0
}

// GroupID is the chosen group, nil when none was picked.
func (f *PostForm) GroupID() *uint {
	if f.group == nil {
		return nil
	}
	id := f.group.ID
	return &id
}

func (f *PostForm) Image() *multipart.FileHeader {
	return f.image
}

func (f *CommentForm) Bind(c *gin.Context) bool {
	f.Errors = core.BindForm(c, f)

	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" && !f.Errors.Has("text") {
		f.Errors.Add("text", core.MsgRequired)
	}
	return len(f.Errors) == 0
}

func lookupGroup(value string) *group.Group {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil
	}
	g, err := group.GetByID(uint(id))
	if err != nil {
		return nil
	}
	return g
}

// isImage sniffs the upload content; the declared type and extension are
// not trusted.
func isImage(header *multipart.FileHeader) bool {
	file, err := header.Open()
	if err != nil {
		return false
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt.String(), "image/")
}
