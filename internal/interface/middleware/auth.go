package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/domain/entity"
)

// AuthHeader is the request header carrying the auth token.
const AuthHeader = "x-auth"

const (
	ctxUserKey  = "currentUser"
	ctxTokenKey = "authToken"
)

// Auth reads the x-auth header and resolves it to a user through the
// user service. Missing, invalid or revoked tokens short-circuit with an
// empty-body 401. On success the user and the raw token are stashed in
// the context; logout needs the exact token to remove it.
func Auth(users *application.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := c.GetHeader(AuthHeader)
		if tok == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		u, err := users.GetByToken(c.Request.Context(), tok)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(ctxUserKey, u)
		c.Set(ctxTokenKey, tok)
		c.Next()
	}
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

// CurrentToken returns the raw token attached by Auth.
func CurrentToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxTokenKey)
	if !ok {
		return "", false
	}
	tok, ok := v.(string)
	return tok, ok
}
