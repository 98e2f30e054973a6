package auth

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Yatube-Back/internal/core"
	"github.com/ArthurDelaporte/Yatube-Back/internal/logs"
	"github.com/ArthurDelaporte/Yatube-Back/internal/templates"
	"github.com/ArthurDelaporte/Yatube-Back/internal/user"
)

const msgBadCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."

var validUsername = regexp.MustCompile(`^[\w.@+-]+$`)

// Handler serves the account pages and issues session cookies that live for
// TTL. Secure marks the cookie HTTPS-only.
type Handler struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

type signupForm struct {
	Username        string `form:"username" binding:"required,max=150"`
	Email           string `form:"email" binding:"omitempty,email,max=254"`
	FirstName       string `form:"first_name" binding:"max=150"`
	LastName        string `form:"last_name" binding:"max=150"`
	Password        string `form:"password" binding:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=Password"`
}

// LoginPage GET /auth/login/
func (h *Handler) LoginPage(c *gin.Context) {
	templates.Render(c, http.StatusOK, "users/login.html", gin.H{
		"title": "Log in",
		"next":  SafeNext(c.Query("next")),
	})
}

// Login POST /auth/login/
func (h *Handler) Login(c *gin.Context) {
	route := c.FullPath()

	var form loginForm
	errs := core.BindForm(c, &form)
	next := SafeNext(form.Next)

	var u *user.User
	if len(errs) == 0 {
		found, err := user.GetByUsername(form.Username)
		if err == nil && CheckPassword(found.PasswordHash, form.Password) {
			u = found
		}
	}
	if u == nil {
		logs.LogJSON("WARN", "Failed login", map[string]interface{}{
			"route":    route,
			"username": form.Username,
		})
		templates.Render(c, http.StatusOK, "users/login.html", gin.H{
			"title":    "Log in",
			"errors":   []string{msgBadCredentials},
			"username": form.Username,
			"next":     next,
		})
		return
	}

	if err := h.startSession(c, u.ID); err != nil {
		core.ServerError(c, err)
		return
	}

	logs.LogJSON("INFO", "User logged in", map[string]interface{}{
		"route":  route,
		"userID": u.ID,
	})
	if next == "" {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

// SignupPage GET /auth/signup/
func (h *Handler) SignupPage(c *gin.Context) {
	templates.Render(c, http.StatusOK, "users/signup.html", gin.H{
		"title":  "Sign up",
		"form":   signupForm{},
		"errors": core.FormErrors{},
	})
}

// Signup POST /auth/signup/
func (h *Handler) Signup(c *gin.Context) {
	route := c.FullPath()

	var form signupForm
	errs := core.BindForm(c, &form)
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	if form.Username != "" && !errs.Has("username") {
		if !validUsername.MatchString(form.Username) {
			errs.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
		} else {
			taken, err := user.ExistsByUsername(form.Username)
			if err != nil {
				core.ServerError(c, err)
				return
			}
			if taken {
				errs.Add("username", "A user with that username already exists.")
			}
		}
	}
	if form.Email != "" && !errs.Has("email") {
		taken, err := user.ExistsByEmail(form.Email)
		if err != nil {
			core.ServerError(c, err)
			return
		}
		if taken {
			errs.Add("email", "A user with that email already exists.")
		}
	}

	if len(errs) > 0 {
		form.Password, form.PasswordConfirm = "", ""
		templates.Render(c, http.StatusOK, "users/signup.html", gin.H{
			"title":  "Sign up",
			"form":   form,
			"errors": errs,
		})
		return
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		core.ServerError(c, err)
		return
	}

	u := user.User{
		Username:     form.Username,
		Email:        form.Email,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		PasswordHash: hash,
	}
	if err := user.Create(&u); err != nil {
		logs.LogJSON("ERROR", "Error creating user", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"username": form.Username,
		})
		core.ServerError(c, err)
		return
	}

	if err := h.startSession(c, u.ID); err != nil {
		core.ServerError(c, err)
		return
	}

	logs.LogJSON("INFO", "User signed up", map[string]interface{}{
		"route":  route,
		"userID": u.ID,
	})
	c.Redirect(http.StatusFound, "/")
}

// Logout GET|POST /auth/logout/
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", h.Secure, true)
	c.Set("user", nil)

	templates.Render(c, http.StatusOK, "users/logged_out.html", gin.H{"title": "Logged out"})
}

func (h *Handler) startSession(c *gin.Context, userID uint) error {
	token, err := IssueToken(h.Secret, userID, h.TTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(h.TTL.Seconds()), "/", "", h.Secure, true)
	return nil
}

// SafeNext keeps next only when it is a path on this site.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return next
}
