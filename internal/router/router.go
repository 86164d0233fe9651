package router

import (
	"html/template"

	"github.com/blogfolio/internal/config"
	"github.com/blogfolio/internal/handler"
	"github.com/blogfolio/internal/view"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionName = "blog_session"

// SetupRouter wires middleware, templates and routes onto a new gin engine.
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.SetFuncMap(template.FuncMap{
		"gravatar": view.GravatarURL,
	})
	if cfg.TemplateGlob != "" {
		r.LoadHTMLGlob(cfg.TemplateGlob)
	}
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}

	api := handler.NewAPI(gdb, cfg.SiteName)
	r.Use(api.Identity())

	r.GET("/healthz", api.HealthCheck)

	r.GET("/", api.ListPosts)
	r.GET("/about", api.ShowAbout)
	r.GET("/contact", api.ShowContact)

	r.GET("/register", api.ShowRegister)
	r.POST("/register", api.Register)
	r.GET("/login", api.ShowLogin)
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)

	r.GET("/post/:id", api.ShowPost)
	r.POST("/post/:id", api.AddComment)

	// admin-only routes answer 403 before the handler runs
	admin := r.Group("")
	admin.Use(handler.AdminOnly())
	{
		admin.GET("/new-post", api.ShowNewPost)
		admin.POST("/new-post", api.CreatePost)
		admin.GET("/edit-post/:id", api.ShowEditPost)
		admin.POST("/edit-post/:id", api.UpdatePost)
		admin.GET("/delete/:id", api.DeletePost)
		admin.POST("/delete/:id", api.DeletePost)
	}

	return r
}
