package post

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/core"
	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
	"github.com/ArthurDelaporte/Yatube-Back/internal/follow"
	"github.com/ArthurDelaporte/Yatube-Back/internal/group"
	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/pagination"
	"github.com/ArthurDelaporte/Yatube-Back/internal/storage"
	"github.com/ArthurDelaporte/Yatube-Back/internal/templates"
	"github.com/ArthurDelaporte/Yatube-Back/internal/user"
)

// Handler serves the post pages. PerPage sizes every feed and Media receives
// uploaded images.
type Handler struct {
	PerPage int
	Media   storage.Storage
}

// Index GET /
func (h *Handler) Index(c *gin.Context) {
	page, err := LoadPage(database.DB.Model(&Post{}), pagination.ParseNumber(c.Query("page")), h.PerPage)
	if err != nil {
		core.ServerError(c, err)
		return
	}

	templates.Render(c, http.StatusOK, "posts/index.html", gin.H{
		"title":    "Latest updates",
		"page_obj": page,
	})
}

// GroupPosts GET /group/:slug/
func (h *Handler) GroupPosts(c *gin.Context) {
	g, err := group.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, group.ErrNotFound) {
			core.NotFound(c)
			return
		}
		core.ServerError(c, err)
		return
	}

	query := database.DB.Model(&Post{}).Where("group_id = ?", g.ID)
	page, err := LoadPage(query, pagination.ParseNumber(c.Query("page")), h.PerPage)
	if err != nil {
		core.ServerError(c, err)
		return
	}

	templates.Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"title":    g.String(),
		"group":    g,
		"page_obj": page,
	})
}

// Profile GET /profile/:username/
func (h *Handler) Profile(c *gin.Context) {
	author, err := user.GetByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			core.NotFound(c)
			return
		}
		core.ServerError(c, err)
		return
	}

	query := database.DB.Model(&Post{}).Where("author_id = ?", author.ID)
	page, err := LoadPage(query, pagination.ParseNumber(c.Query("page")), h.PerPage)
	if err != nil {
		core.ServerError(c, err)
		return
	}

	followers, err := follow.CountFollowers(author.ID)
	if err != nil {
		core.ServerError(c, err)
		return
	}

	viewerID, loggedIn := viewer(c)
	showFollow := loggedIn && viewerID != author.ID
	following := false
	if showFollow {
		if following, err = follow.IsFollowing(viewerID, author.ID); err != nil {
			core.ServerError(c, err)
			return
		}
	}

	templates.Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"title":           "Profile of " + author.DisplayName(),
		"author":          author,
		"posts_count":     page.Total,
		"followers_count": followers,
		"show_follow":     showFollow,
		"following":       following,
		"page_obj":        page,
	})
}

// Detail GET /posts/:id/
func (h *Handler) Detail(c *gin.Context) {
	p, ok := h.lookup(c)
	if !ok {
		return
	}

	comments, err := Comments(p.ID)
	if err != nil {
		core.ServerError(c, err)
		return
	}
	count, err := CountByAuthor(p.AuthorID)
	if err != nil {
		core.ServerError(c, err)
		return
	}

	viewerID, loggedIn := viewer(c)
	templates.Render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"title":       "Post " + p.String(),
		"post":        p,
		"comments":    comments,
		"posts_count": count,
		"can_edit":    loggedIn && viewerID == p.AuthorID,
	})
}

// Create GET|POST /create/
func (h *Handler) Create(c *gin.Context) {
	route := c.FullPath()
	author := currentUser(c)
	form := &PostForm{}

	if c.Request.Method != http.MethodPost || !form.Bind(c, true) {
		h.renderForm(c, form, nil)
		return
	}

	newPost := Post{
		Text:     form.Text,
		AuthorID: author.ID,
		GroupID:  form.GroupID(),
	}

	if header := form.Image(); header != nil {
		key, err := storage.SaveUpload(c.Request.Context(), h.Media, header, "posts")
		if err != nil {
			core.ServerError(c, err)
			return
		}
		newPost.Image = key
	}

	if err := Create(&newPost); err != nil {
		if newPost.Image != "" {
			_ = h.Media.Delete(c.Request.Context(), newPost.Image)
		}
		logs.LogJSON("ERROR", "Error creating post", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": author.ID,
		})
		core.ServerError(c, err)
		return
	}

	logs.LogJSON("INFO", "Post created", map[string]interface{}{
		"route":  route,
		"userID": author.ID,
		"postID": newPost.ID,
	})
	c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// Edit GET|POST /posts/:id/edit/
func (h *Handler) Edit(c *gin.Context) {
	p, ok := h.lookup(c)
	if !ok {
		return
	}

	detail := "/posts/" + strconv.FormatUint(uint64(p.ID), 10) + "/"
	if viewerID, _ := viewer(c); viewerID != p.AuthorID {
		c.Redirect(http.StatusFound, detail)
		return
	}

	if c.Request.Method != http.MethodPost {
		form := &PostForm{Text: p.Text}
		if p.GroupID != nil {
			form.Group = strconv.FormatUint(uint64(*p.GroupID), 10)
		}
		h.renderForm(c, form, p)
		return
	}

	form := &PostForm{}
	if !form.Bind(c, false) {
		h.renderForm(c, form, p)
		return
	}

	p.Text = form.Text
	p.GroupID = form.GroupID()
	if err := UpdateContent(p); err != nil {
		core.ServerError(c, err)
		return
	}

	logs.LogJSON("INFO", "Post updated", map[string]interface{}{
		"route":  c.FullPath(),
		"userID": p.AuthorID,
		"postID": p.ID,
	})
	c.Redirect(http.StatusFound, detail)
}

// AddComment GET|POST /posts/:id/comment/
func (h *Handler) AddComment(c *gin.Context) {
	p, ok := h.lookup(c)
	if !ok {
		return
	}
	detail := "/posts/" + strconv.FormatUint(uint64(p.ID), 10) + "/"

	form := &CommentForm{}
	if c.Request.Method != http.MethodPost || !form.Bind(c) {
		c.Redirect(http.StatusFound, detail)
		return
	}

	author := currentUser(c)
	comment := Comment{PostID: p.ID, AuthorID: author.ID, Text: form.Text}
	if err := CreateComment(&comment); err != nil {
		core.ServerError(c, err)
		return
	}

	logs.LogJSON("INFO", "Comment added", map[string]interface{}{
		"route":  c.FullPath(),
		"userID": author.ID,
		"postID": p.ID,
	})
	c.Redirect(http.StatusFound, detail)
}

// FollowIndex GET /follow/
func (h *Handler) FollowIndex(c *gin.Context) {
	viewerID, _ := viewer(c)

	query := database.DB.Model(&Post{}).Where("author_id IN (?)", follow.AuthorIDsQuery(viewerID))
	page, err := LoadPage(query, pagination.ParseNumber(c.Query("page")), h.PerPage)
	if err != nil {
		core.ServerError(c, err)
		return
	}

	templates.Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"title":    "Following",
		"page_obj": page,
	})
}

// lookup resolves :id, rendering the 404 page when it names no post.
func (h *Handler) lookup(c *gin.Context) (*Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		core.NotFound(c)
		return nil, false
	}

	p, err := GetByID(uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			core.NotFound(c)
			return nil, false
		}
		core.ServerError(c, err)
		return nil, false
	}
	return p, true
}

func (h *Handler) renderForm(c *gin.Context, form *PostForm, editing *Post) {
	groups, err := group.All()
	if err != nil {
		core.ServerError(c, err)
		return
	}

	title := "New post"
	if editing != nil {
		title = "Edit post"
	}
	templates.Render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"title":   title,
		"form":    form,
		"groups":  groups,
		"is_edit": editing != nil,
		"post":    editing,
	})
}

func viewer(c *gin.Context) (uint, bool) {
	id, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	uid, ok := id.(uint)
	return uid, ok
}

// currentUser is set by the identity middleware on every gated route.
func currentUser(c *gin.Context) *user.User {
	u, _ := c.Get("user")
	current, _ := u.(*user.User)
	return current
}
