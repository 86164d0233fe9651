package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blogfolio/internal/form"
	"github.com/blogfolio/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	msgDuplicateEmail = "An account with this email already exists. Log in instead."
	msgUnknownEmail   = "No account uses that email. Please register first."
	msgBadPassword    = "That password is wrong, please try again."
	msgInvalidCSRF    = "Your form expired. Please submit it again."
	msgAuthRequired   = "You need to log in to comment."
	msgServerError    = "Something went wrong, please try again later."
)

// ShowRegister renders the sign-up form.
func (a *API) ShowRegister(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "register.html", gin.H{
		"title": "Register",
		"form":  form.Register{},
	})
}

// Register creates an account and sends the visitor to the login page.
func (a *API) Register(c *gin.Context) {
	var input form.Register
	if !validCSRF(c) {
		input.Name = strings.TrimSpace(c.PostForm("name"))
		input.Email = strings.TrimSpace(c.PostForm("email"))
		a.renderRegister(c, http.StatusBadRequest, input, msgInvalidCSRF)
		return
	}

	if err := form.Bind(c, &input); err != nil {
		a.renderRegister(c, http.StatusBadRequest, input, validationMessage(err))
		return
	}

	_, err := a.users.Register(service.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			a.renderRegister(c, http.StatusConflict, input, msgDuplicateEmail)
		default:
			c.Error(err)
			a.renderRegister(c, http.StatusInternalServerError, input, msgServerError)
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form, showing an error passed in the query string.
func (a *API) ShowLogin(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Log In",
		"form":  form.Login{},
		"error": strings.TrimSpace(c.Query("error")),
	})
}

// Login verifies the credentials and stores the account in the session.
func (a *API) Login(c *gin.Context) {
	var input form.Login
	if !validCSRF(c) {
		input.Email = strings.TrimSpace(c.PostForm("email"))
		a.renderLogin(c, http.StatusBadRequest, input, msgInvalidCSRF)
		return
	}

	if err := form.Bind(c, &input); err != nil {
		a.renderLogin(c, http.StatusBadRequest, input, validationMessage(err))
		return
	}

	user, err := a.users.Authenticate(input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			a.renderLogin(c, http.StatusUnauthorized, input, msgUnknownEmail)
		case errors.Is(err, service.ErrBadPassword):
			a.renderLogin(c, http.StatusUnauthorized, input, msgBadPassword)
		default:
			c.Error(err)
			a.renderLogin(c, http.StatusInternalServerError, input, msgServerError)
		}
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		c.Error(err)
		a.renderLogin(c, http.StatusInternalServerError, input, msgServerError)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session and returns to the post listing.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (a *API) renderRegister(c *gin.Context, status int, input form.Register, message string) {
	input.Password = ""
	a.renderHTML(c, status, "register.html", gin.H{
		"title": "Register",
		"form":  input,
		"error": message,
	})
}

func (a *API) renderLogin(c *gin.Context, status int, input form.Login, message string) {
	input.Password = ""
	a.renderHTML(c, status, "login.html", gin.H{
		"title": "Log In",
		"form":  input,
		"error": message,
	})
}

func validationMessage(err error) string {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return verr.Message()
	}
	return err.Error()
}
