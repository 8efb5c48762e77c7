package middleware

import (
	"net/http"
	"net/url"

	"inkwell/internal/models"
	"inkwell/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const ViewerKey = "viewer"

// LoadUser resolves the session identity into a user and attaches it to
// the request context. Anonymous requests pass through untouched.
func LoadUser(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get("user_id").(uint); ok {
			if user, err := users.ByID(id); err == nil {
				c.Set(ViewerKey, user)
			}
		}
		c.Next()
	}
}

// Viewer is the authorization guard: it returns the authenticated
// identity, or false for anonymous requests.
func Viewer(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ViewerKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// AuthRequired bounces anonymous requests to the login page, keeping
// the original URL as the return target.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Viewer(c); !ok {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}
