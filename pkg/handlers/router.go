package handlers

import (
	"fmt"
	"net/http"

	"noticias-cms/pkg/config"
	"noticias-cms/pkg/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// NewRouter wires sessions, templates, static assets and every route.
func NewRouter(cfg *config.Config, backend NewsBackend, logger *zap.Logger) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		logger.Warn("no session secret configured, sessions will not survive a restart")
		secret = securecookie.GenerateRandomKey(32)
	}
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h := NewHandler(backend, logger, cfg.Notify, cfg.OAuth())

	r := gin.New()
	r.Use(RequestID(), Logger(logger), gin.Recovery())
	r.Use(sessions.Sessions(cfg.SessionName, store))

	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/healthz", h.Health)

	app := r.Group("/")
	if h.oauth != nil {
		r.GET("/login", h.LoginPage)
		r.GET("/login/github", h.GithubLogin)
		r.GET("/auth/callback", h.AuthCallback)
		r.GET("/logout", h.Logout)
		app.Use(AuthRequired)
	}
	{
		app.GET("/", h.Index)
		app.GET("/categorias/:id", h.Category)
		app.POST("/form/novo", h.NewForm)
		app.POST("/form/enviar", h.SubmitForm)
		app.POST("/form/fechar", h.CloseForm)
		app.POST("/noticias/:id/editar", h.EditArticle)
		app.POST("/noticias/:id/deletar", h.DeleteArticle)
		app.GET("/noticias/:id/exportar", h.ExportArticle)
		app.POST("/importar", h.ImportArticle)

		api := app.Group("/api")
		{
			api.GET("/categorias", h.ListCategories)
			api.GET("/noticias", h.ListArticles)
			api.POST("/noticias", h.SaveArticle)
			api.DELETE("/noticias/:id", h.DeleteArticleAPI)
			api.GET("/formulario", h.FormState)
		}
	}

	return r, nil
}
