package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShowAbout renders the static about page.
func (a *API) ShowAbout(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"title": "About",
	})
}

// ShowContact renders the static contact page.
func (a *API) ShowContact(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title": "Contact",
	})
}
