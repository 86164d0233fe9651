package handler

import (
	"errors"
	"net/http"

	"github.com/blogfolio/internal/auth"
	"github.com/blogfolio/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionUserKey = "user_id"

// Identity resolves the session's user into a request-scoped auth.Identity.
// Anonymous visitors pass through untouched; sessions pointing at a vanished
// account are cleared.
func (a *API) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(sessionUserKey).(uint)
		if !ok || userID == 0 {
			c.Next()
			return
		}

		user, err := a.users.Get(userID)
		if err != nil {
			if !errors.Is(err, service.ErrUserNotFound) {
				c.Error(err)
			}
			session.Delete(sessionUserKey)
			if saveErr := session.Save(); saveErr != nil {
				c.Error(saveErr)
			}
			c.Next()
			return
		}

		identity := auth.Identity{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Admin:  user.IsAdmin(),
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// AdminOnly rejects every request that is not made by the admin with a bare 403.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := currentIdentity(c)
		if !ok || !identity.Admin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
