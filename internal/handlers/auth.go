package handlers

import (
	"net/http"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users store.Users
}

func NewAuthHandler(users store.Users) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "signup.html", &AuthPage{
		basePage: basePage{Title: "Sign up"},
		Next:     safeNext(c.Query("next")),
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	fail := func(message string) {
		Render(c, http.StatusBadRequest, "signup.html", &AuthPage{
			basePage: basePage{Title: "Sign up"},
			Error:    message,
			Next:     next,
		})
	}

	if username == "" || email == "" {
		fail("Username and email are required")
		return
	}
	if len(password) < 6 {
		fail("Password must be at least 6 characters")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		utils.Sugar.Errorf("hash password: %v", err)
		fail("Could not create the account")
		return
	}

	user := models.User{Username: username, Email: email, PasswordHash: hash}
	if err := h.users.Create(&user); err != nil {
		// Unique index on username/email rejects duplicates.
		fail("That username or email is already taken")
		return
	}

	h.startSession(c, user.ID)
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "login.html", &AuthPage{
		basePage: basePage{Title: "Log in"},
		Next:     safeNext(c.Query("next")),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	user, err := h.users.ByUsername(username)
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		Render(c, http.StatusUnauthorized, "login.html", &AuthPage{
			basePage: basePage{Title: "Log in"},
			Error:    "Wrong username or password",
			Next:     next,
		})
		return
	}

	h.startSession(c, user.ID)
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.Sugar.Warnf("clear session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint) {
	session := sessions.Default(c)
	session.Set("user_id", userID)
	if err := session.Save(); err != nil {
		utils.Sugar.Errorf("save session: %v", err)
	}
}

// safeNext keeps login redirects on-site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
