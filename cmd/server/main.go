package main

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/feed"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
	"inkwell/internal/services"
	"inkwell/internal/social"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.LogPath, cfg.LogLevel)
	defer utils.Logger.Sync()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		utils.Sugar.Fatalf("open database: %v", err)
	}
	db.SeedGroups(conn)

	users := store.NewUsers(conn)
	groups := store.NewGroups(conn)
	posts := store.NewPosts(conn)
	comments := store.NewComments(conn)
	follows := store.NewFollows(conn)

	feedSvc := feed.NewService(posts, groups, users, follows)
	socialSvc := social.NewService(follows)

	images, err := services.NewImageStore(cfg.UploadDir)
	if err != nil {
		utils.Sugar.Fatalf("image store: %v", err)
	}

	pageCache, err := cache.New(cfg.CacheSize, cfg.IndexCacheTTL, nil)
	if err != nil {
		utils.Sugar.Fatalf("page cache: %v", err)
	}

	r := gin.Default()

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("inkwell_session", sessionStore))

	r.HTMLRender = loadTemplates(cfg.TemplatesDir)
	r.Static("/static", cfg.StaticDir)
	r.Static("/uploads", cfg.UploadDir)

	r.Use(middleware.LoadUser(users))

	authHandler := handlers.NewAuthHandler(users)
	postHandler := handlers.NewPostHandler(cfg.PageSize, feedSvc, posts, comments, groups, images)
	userHandler := handlers.NewUserHandler(cfg.PageSize, feedSvc, users, posts, comments, follows, socialSvc)
	groupHandler := handlers.NewGroupHandler(groups)

	router.Register(r, pageCache, authHandler, postHandler, userHandler, groupHandler)

	utils.Sugar.Infof("inkwell server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.Sugar.Fatalf("server: %v", err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Every view is assembled on top of the shared layout and includes.
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t time.Time) string {
			d := time.Since(t)
			switch {
			case d < time.Minute:
				return "just now"
			case d < time.Hour:
				return fmt.Sprintf("%dm ago", int(d.Minutes()))
			case d < 24*time.Hour:
				return fmt.Sprintf("%dh ago", int(d.Hours()))
			case d < 30*24*time.Hour:
				return fmt.Sprintf("%dd ago", int(d.Hours()/24))
			default:
				return t.Format("Jan 2, 2006")
			}
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	views := []string{
		"index.html",
		"follow.html",
		"group.html",
		"group_list.html",
		"profile.html",
		"post_detail.html",
		"post_form.html",
		"login.html",
		"signup.html",
		"error.html",
	}
	for _, view := range views {
		r.AddFromFilesFuncs(view, funcMap, assemble(templatesDir+"/views/"+view)...)
	}

	return r
}
