package handler

import (
	"strings"
	"time"

	"github.com/blogfolio/internal/auth"
	"github.com/blogfolio/internal/form"
	"github.com/blogfolio/internal/service"
	"github.com/blogfolio/internal/view"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	users    *service.UserService
	posts    *service.PostService
	comments *service.CommentService
	siteName string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, siteName string) *API {
	name := strings.TrimSpace(siteName)
	if name == "" {
		name = "Blogfolio"
	}

	return &API{
		db:       gdb,
		users:    service.NewUserService(gdb),
		posts:    service.NewPostService(gdb),
		comments: service.NewCommentService(gdb),
		siteName: name,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	identity, loggedIn := currentIdentity(c)

	session := sessions.Default(c)
	token := form.CSRFToken(session)
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	defaults := gin.H{
		"siteName":   a.siteName,
		"logged_in":  loggedIn,
		"admin":      loggedIn && identity.Admin,
		"csrf_token": token,
		"year":       time.Now().Year(),
	}
	if loggedIn {
		defaults["current_user"] = gin.H{
			"id":     identity.UserID,
			"name":   identity.Name,
			"email":  identity.Email,
			"avatar": view.GravatarURLSized(identity.Email, 40),
		}
	}
	for key, value := range defaults {
		if _, exists := payload[key]; !exists {
			payload[key] = value
		}
	}

	c.HTML(status, template, payload)
}

// currentIdentity returns the signed-in account resolved by the Identity middleware.
func currentIdentity(c *gin.Context) (auth.Identity, bool) {
	if c.Request == nil {
		return auth.Identity{}, false
	}
	return auth.FromContext(c.Request.Context())
}
