package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/blogfolio/internal/form"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// postIDOrNotFound parses :id and answers 404 when it is not a post id.
func postIDOrNotFound(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func validCSRF(c *gin.Context) bool {
	return form.VerifyCSRF(sessions.Default(c), c.PostForm(form.CSRFField)) == nil
}

func redirectToLogin(c *gin.Context, message string) {
	target := "/login"
	if message != "" {
		target += "?" + url.Values{"error": {message}}.Encode()
	}
	c.Redirect(http.StatusFound, target)
}
