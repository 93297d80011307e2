package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"redirectflow-go/internal/service"
	"redirectflow-go/pkg/logging"
)

const SessionCookieName = "redirectflow_session"

// SessionStore holds the cookie carrying the server-side session token.
var SessionStore *sessions.CookieStore

func InitSessionStore() {
	secret := viper.GetString("auth.session_secret")
	if secret == "" {
		// dev fallback; always override in production
		secret = "redirectflow-dev-secret"
		logging.Logger.Warn("auth.session_secret is not configured, using dev fallback")
	}

	SessionStore = sessions.NewCookieStore([]byte(secret))
	SessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(7 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Paths that never require a session: the public redirect path, the login
// API, the batch trigger (bearer-authenticated on its own), health checks
// and static assets. /login is handled inside the gate so an already
// authenticated visit can be bounced to the home path.
var publicPrefixes = []string{
	"/r/",
	"/api/auth/login",
	"/api/batch/",
	"/healthz",
}

func isPublicPath(path string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	// static assets keep their file extension
	return strings.Contains(path, ".")
}

// SessionGate validates the session cookie against the store on every
// non-public request. Unauthenticated traffic is redirected to /login;
// authenticated requests to /login are redirected home. When the store
// itself fails during validation, auth.fail_policy decides: "open"
// (default) lets the request through to avoid a lockout loop, "closed"
// redirects to /login. Either way the event is logged. Refreshed cookies
// are propagated onto whichever response goes out, redirects included.
func SessionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isPublicPath(path) {
			c.Next()
			return
		}

		session, err := SessionStore.Get(c.Request, SessionCookieName)
		if err != nil {
			// a tampered cookie decodes to a fresh empty session
			session, _ = SessionStore.New(c.Request, SessionCookieName)
		}
		token, _ := session.Values["token"].(string)

		user, err := service.ValidateSession(token)
		if err != nil {
			policy := viper.GetString("auth.fail_policy")
			logging.Logger.Error("session validation failed, applying fail policy",
				zap.String("policy", policy),
				zap.String("path", path),
				zap.Error(err))
			if policy == "closed" && path != "/login" {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if path == "/login" {
			if user != nil {
				refreshSessionCookie(c, session, token)
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		refreshSessionCookie(c, session, token)
		c.Set("user", user)
		c.Next()
	}
}

func refreshSessionCookie(c *gin.Context, session *sessions.Session, token string) {
	session.Values["token"] = token
	if err := session.Save(c.Request, c.Writer); err != nil {
		logging.Logger.Warn("failed to refresh session cookie", zap.Error(err))
	}
}
