package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/blogfolio/internal/db"
	"github.com/blogfolio/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type renderCall struct {
	name string
	data gin.H
}

type captureHTMLRender struct {
	calls []renderCall
}

type captureHTMLInstance struct{}

func (r *captureHTMLRender) Instance(name string, data interface{}) render.Render {
	h, _ := data.(gin.H)
	r.calls = append(r.calls, renderCall{name: name, data: h})
	return captureHTMLInstance{}
}

func (r *captureHTMLRender) last(t *testing.T) renderCall {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatal("expected a template to be rendered")
	}
	return r.calls[len(r.calls)-1]
}

func (captureHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (captureHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type testEnv struct {
	gdb    *gorm.DB
	api    *API
	router *gin.Engine
	render *captureHTMLRender
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := db.Open(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	api := NewAPI(gdb, "Test Blog")
	capture := &captureHTMLRender{}

	r := gin.New()
	r.HTMLRender = capture
	r.Use(sessions.Sessions("blog_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(api.Identity())

	r.GET("/", api.ListPosts)
	r.GET("/about", api.ShowAbout)
	r.GET("/contact", api.ShowContact)
	r.GET("/healthz", api.HealthCheck)
	r.GET("/register", api.ShowRegister)
	r.POST("/register", api.Register)
	r.GET("/login", api.ShowLogin)
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)
	r.GET("/post/:id", api.ShowPost)
	r.POST("/post/:id", api.AddComment)

	admin := r.Group("")
	admin.Use(AdminOnly())
	admin.GET("/new-post", api.ShowNewPost)
	admin.POST("/new-post", api.CreatePost)
	admin.GET("/edit-post/:id", api.ShowEditPost)
	admin.POST("/edit-post/:id", api.UpdatePost)
	admin.GET("/delete/:id", api.DeletePost)
	admin.POST("/delete/:id", api.DeletePost)

	return &testEnv{gdb: gdb, api: api, router: r, render: capture}
}

func (e *testEnv) register(t *testing.T, name, email, password string) *db.User {
	t.Helper()
	user, err := e.api.users.Register(service.RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func (e *testEnv) createPost(t *testing.T, authorID uint, title string) *db.Post {
	t.Helper()
	post, err := e.api.posts.Create(service.PostInput{
		Title:    title,
		Subtitle: title + " subtitle",
		Body:     title + " body",
		ImgURL:   "https://example.com/" + title + ".png",
		AuthorID: authorID,
	})
	if err != nil {
		t.Fatalf("create post %s: %v", title, err)
	}
	return post
}

// browser keeps the session cookie between requests.
type browser struct {
	env     *testEnv
	cookies map[string]*http.Cookie
}

func (e *testEnv) browser() *browser {
	return &browser{env: e, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path string, values url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if values != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	b.env.router.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		b.cookies[ck.Name] = ck
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

// csrf loads a page to obtain the form token bound to this browser's session.
func (b *browser) csrf(t *testing.T) string {
	t.Helper()
	rec := b.get("/about")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected about page to render, got %d", rec.Code)
	}
	token, _ := b.env.render.last(t).data["csrf_token"].(string)
	if token == "" {
		t.Fatal("expected a csrf token in the view model")
	}
	return token
}

func (b *browser) post(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if values == nil {
		values = url.Values{}
	}
	values.Set("csrf_token", b.csrf(t))
	return b.do(http.MethodPost, path, values)
}

func (b *browser) login(t *testing.T, email, password string) {
	t.Helper()
	rec := b.post(t, "/login", url.Values{"email": {email}, "password": {password}})
	if rec.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d", rec.Code)
	}
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func currentUserID(call renderCall) uint {
	current, ok := call.data["current_user"].(gin.H)
	if !ok {
		return 0
	}
	id, _ := current["id"].(uint)
	return id
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func toHTML(v interface{}) template.HTML {
	h, _ := v.(template.HTML)
	return h
}
