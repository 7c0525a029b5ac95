package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todo-api/internal/application"
	"github.com/oksasatya/todo-api/internal/interface/middleware"
	"github.com/oksasatya/todo-api/pkg/apperror"
	"github.com/oksasatya/todo-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register handles POST /users. The fresh auth token travels in the
// x-auth response header, not the body.
func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, validation.ToDetails(err))
		return
	}

	u, tok, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.Logger.WithField("user_id", u.ID).Info("user registered")
	c.Header(middleware.AuthHeader, tok)
	c.JSON(http.StatusOK, u)
}

// Login handles POST /users/login. Bad credentials answer 400 with an
// empty body, matching the rest of the wire contract.
func (h *UserHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, validation.ToDetails(err))
		return
	}

	u, tok, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if apperror.IsAuthError(err) {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		writeError(c, err)
		return
	}

	c.Header(middleware.AuthHeader, tok)
	c.JSON(http.StatusOK, u)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Logout handles DELETE /users/me/token: it removes exactly the token
// this request authenticated with.
func (h *UserHandler) Logout(c *gin.Context) {
	u, okUser := middleware.CurrentUser(c)
	tok, okTok := middleware.CurrentToken(c)
	if !okUser || !okTok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), u.ID, tok); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
