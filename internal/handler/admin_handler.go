package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/blogfolio/internal/form"
	"github.com/blogfolio/internal/service"
	"github.com/gin-gonic/gin"
)

const msgDuplicateTitle = "A post with this title already exists."

// ShowNewPost renders the empty post editor. Admin only.
func (a *API) ShowNewPost(c *gin.Context) {
	a.renderEditor(c, http.StatusOK, form.Post{}, "/new-post", false, "")
}

// CreatePost publishes a new post written by the admin.
func (a *API) CreatePost(c *gin.Context) {
	identity, _ := currentIdentity(c)

	var input form.Post
	if !validCSRF(c) {
		input = postFormFromRequest(c)
		a.renderEditor(c, http.StatusBadRequest, input, "/new-post", false, msgInvalidCSRF)
		return
	}
	if err := form.Bind(c, &input); err != nil {
		a.renderEditor(c, http.StatusBadRequest, input, "/new-post", false, validationMessage(err))
		return
	}

	_, err := a.posts.Create(service.PostInput{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Body:     input.Body,
		ImgURL:   input.ImgURL,
		AuthorID: identity.UserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateTitle):
			a.renderEditor(c, http.StatusConflict, input, "/new-post", false, msgDuplicateTitle)
		default:
			c.Error(err)
			a.renderEditor(c, http.StatusInternalServerError, input, "/new-post", false, msgServerError)
		}
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ShowEditPost renders the editor filled with the stored post.
func (a *API) ShowEditPost(c *gin.Context) {
	id, ok := postIDOrNotFound(c)
	if !ok {
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		a.postLookupFailed(c, err)
		return
	}

	input := form.Post{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	a.renderEditor(c, http.StatusOK, input, editPath(id), true, "")
}

// UpdatePost saves the editor's fields onto the stored post.
func (a *API) UpdatePost(c *gin.Context) {
	id, ok := postIDOrNotFound(c)
	if !ok {
		return
	}

	var input form.Post
	if !validCSRF(c) {
		input = postFormFromRequest(c)
		a.renderEditor(c, http.StatusBadRequest, input, editPath(id), true, msgInvalidCSRF)
		return
	}
	if err := form.Bind(c, &input); err != nil {
		a.renderEditor(c, http.StatusBadRequest, input, editPath(id), true, validationMessage(err))
		return
	}

	post, err := a.posts.Update(id, service.PostInput{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		Body:     input.Body,
		ImgURL:   input.ImgURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, service.ErrDuplicateTitle):
			a.renderEditor(c, http.StatusConflict, input, editPath(id), true, msgDuplicateTitle)
		default:
			c.Error(err)
			a.renderEditor(c, http.StatusInternalServerError, input, editPath(id), true, msgServerError)
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

// DeletePost removes the post and its comments. POST requests must carry the form token.
func (a *API) DeletePost(c *gin.Context) {
	id, ok := postIDOrNotFound(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodPost && !validCSRF(c) {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := a.posts.Delete(id); err != nil {
		a.postLookupFailed(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (a *API) renderEditor(c *gin.Context, status int, input form.Post, action string, editing bool, message string) {
	heading := "New Post"
	if editing {
		heading = "Edit Post"
	}
	a.renderHTML(c, status, "make-post.html", gin.H{
		"title":   heading,
		"heading": heading,
		"action":  action,
		"editing": editing,
		"form":    input,
		"error":   message,
	})
}

func postFormFromRequest(c *gin.Context) form.Post {
	return form.Post{
		Title:    strings.TrimSpace(c.PostForm("title")),
		Subtitle: strings.TrimSpace(c.PostForm("subtitle")),
		ImgURL:   strings.TrimSpace(c.PostForm("img_url")),
		Body:     c.PostForm("body"),
	}
}

func editPath(id uint) string {
	return fmt.Sprintf("/edit-post/%d", id)
}
