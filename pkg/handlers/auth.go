package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// AuthRequired gates the CMS behind the GitHub login. API calls get a 401,
// pages a redirect.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	token := session.Get(sessionKeyToken)
	if token == nil {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		}
		return
	}
	c.Next()
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Error": c.Query("error")})
}

func (h *Handler) GithubLogin(c *gin.Context) {
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(sessionKeyState, state)
	h.save(c, session)

	url := h.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *Handler) AuthCallback(c *gin.Context) {
	session := sessions.Default(c)
	expected, _ := session.Get(sessionKeyState).(string)
	session.Delete(sessionKeyState)
	if expected == "" || c.Query("state") != expected {
		h.save(c, session)
		c.Redirect(http.StatusFound, "/login?error=state")
		return
	}

	token, err := h.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.logger.Warn("oauth exchange failed", zap.Error(err), zap.String("request_id", requestID(c)))
		h.save(c, session)
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	session.Set(sessionKeyToken, token.AccessToken)
	h.save(c, session)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	h.save(c, session)
	c.Redirect(http.StatusFound, "/login")
}
