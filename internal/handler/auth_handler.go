package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"redirectflow-go/internal/dto"
	"redirectflow-go/internal/middleware"
	"redirectflow-go/internal/model"
	"redirectflow-go/internal/service"
	"redirectflow-go/pkg/logging"
	"redirectflow-go/response"
)

// LoginHandler verifies credentials and issues the session cookie.
func LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := service.Login(req.Email, req.Password)
	if err != nil {
		zap.L().Warn("Login failed",
			zap.Error(err),
			zap.String("email", req.Email),
		)
		_ = c.Error(err)
		return
	}

	session, _ := middleware.SessionStore.New(c.Request, middleware.SessionCookieName)
	session.Values["token"] = token
	if err := session.Save(c.Request, c.Writer); err != nil {
		logging.Logger.Error("failed to set session cookie", zap.Error(err))
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response.OK(user, "Logged in"))
}

// LogoutHandler deletes the session row and expires the cookie.
func LogoutHandler(c *gin.Context) {
	session, err := middleware.SessionStore.Get(c.Request, middleware.SessionCookieName)
	if err == nil {
		if token, ok := session.Values["token"].(string); ok && token != "" {
			service.Logout(token)
		}
	} else {
		session, _ = middleware.SessionStore.New(c.Request, middleware.SessionCookieName)
	}

	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		logging.Logger.Warn("failed to expire session cookie", zap.Error(err))
	}

	c.JSON(http.StatusOK, response.OK("", "Logged out"))
}

// MeHandler returns the user the session gate resolved for this request.
func MeHandler(c *gin.Context) {
	v, ok := c.Get("user")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Not authenticated"))
		return
	}

	user, ok := v.(*model.User)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Not authenticated"))
		return
	}

	c.JSON(http.StatusOK, response.OK(user, "success"))
}
