package handler

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/blogfolio/internal/db"
	"github.com/blogfolio/internal/form"
	"github.com/blogfolio/internal/service"
	"github.com/blogfolio/internal/view"
	"github.com/gin-gonic/gin"
)

type commentView struct {
	ID         uint
	Text       template.HTML
	AuthorName string
	AvatarURL  string
}

// ListPosts renders every post on the home page.
func (a *API) ListPosts(c *gin.Context) {
	posts, err := a.posts.List()
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "index.html", gin.H{
			"title": "Home",
			"error": "Could not load posts.",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"title": "Home",
		"posts": posts,
	})
}

// ShowPost renders one post with its comments and the comment form.
func (a *API) ShowPost(c *gin.Context) {
	id, ok := postIDOrNotFound(c)
	if !ok {
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		a.postLookupFailed(c, err)
		return
	}

	a.renderPost(c, http.StatusOK, post, form.Comment{}, "")
}

// AddComment stores a comment from the signed-in reader on the post.
func (a *API) AddComment(c *gin.Context) {
	id, ok := postIDOrNotFound(c)
	if !ok {
		return
	}

	identity, loggedIn := currentIdentity(c)
	if !loggedIn {
		redirectToLogin(c, msgAuthRequired)
		return
	}

	var input form.Comment
	if !validCSRF(c) {
		input.Text = c.PostForm("comment_text")
		a.rerenderPost(c, id, http.StatusBadRequest, input, msgInvalidCSRF)
		return
	}
	if err := form.Bind(c, &input); err != nil {
		a.rerenderPost(c, id, http.StatusBadRequest, input, validationMessage(err))
		return
	}

	_, err := a.comments.Create(service.CommentInput{
		PostID:   id,
		AuthorID: identity.UserID,
		Text:     input.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			redirectToLogin(c, msgAuthRequired)
		case errors.Is(err, service.ErrPostNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, service.ErrCommentEmpty):
			a.rerenderPost(c, id, http.StatusBadRequest, input, "Comment is required.")
		default:
			c.Error(err)
			a.rerenderPost(c, id, http.StatusInternalServerError, input, msgServerError)
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d#comments", id))
}

func (a *API) rerenderPost(c *gin.Context, id uint, status int, input form.Comment, message string) {
	post, err := a.posts.Get(id)
	if err != nil {
		a.postLookupFailed(c, err)
		return
	}
	a.renderPost(c, status, post, input, message)
}

func (a *API) renderPost(c *gin.Context, status int, post *db.Post, input form.Comment, message string) {
	content, err := view.RenderMarkdown(post.Body)
	if err != nil {
		c.Error(err)
		content = template.HTML(template.HTMLEscapeString(post.Body))
	}

	a.renderHTML(c, status, "post.html", gin.H{
		"title":    post.Title,
		"post":     post,
		"content":  content,
		"comments": buildCommentViews(post.Comments),
		"form":     input,
		"error":    message,
	})
}

func (a *API) postLookupFailed(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPostNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

func buildCommentViews(comments []db.Comment) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, commentView{
			ID:         comment.ID,
			Text:       view.MustRenderMarkdown(comment.Text),
			AuthorName: comment.Author.Name,
			AvatarURL:  view.GravatarURL(comment.Author.Email),
		})
	}
	return views
}
