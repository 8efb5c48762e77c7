package router

import (
	"inkwell/internal/cache"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires every route. Only the global index sits behind the
// page cache; every other page is rendered per request.
func Register(
	r *gin.Engine,
	pageCache *cache.Cache,
	auth *handlers.AuthHandler,
	posts *handlers.PostHandler,
	users *handlers.UserHandler,
	groups *handlers.GroupHandler,
) {
	// Public routes
	r.GET("/", cache.Page(pageCache), posts.Index)
	r.GET("/group/:slug", posts.GroupPosts)
	r.GET("/groups", groups.List)
	r.GET("/profile/:username", users.Profile)
	r.GET("/posts/:id", posts.Detail)

	r.GET("/signup", auth.ShowSignup)
	r.POST("/signup", auth.Signup)
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", auth.Login)
	r.GET("/logout", auth.Logout)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/follow", posts.FollowIndex)
		authorized.GET("/create", posts.ShowCreate)
		authorized.POST("/create", posts.Create)
		authorized.GET("/posts/:id/edit", posts.ShowEdit)
		authorized.POST("/posts/:id/edit", posts.Edit)
		authorized.POST("/posts/:id/comment", posts.AddComment)
		authorized.POST("/posts/:id/delete", posts.Delete)
		authorized.GET("/profile/:username/follow", users.Follow)
		authorized.GET("/profile/:username/unfollow", users.Unfollow)
	}
}
