package handlers

import (
	"net/http"

	"noticias-cms/pkg/models"
	"noticias-cms/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) apiBackendError(c *gin.Context, msg string, err error) {
	h.backendFailure(c, msg, err)
	c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": msg})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.backend.ListCategories(c.Request.Context())
	if err != nil {
		h.apiBackendError(c, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListArticles answers 409 when a newer listing from the same visitor replaced this one.
func (h *Handler) ListArticles(c *gin.Context) {
	id, err := models.ParseID(c.Query("categoria"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid category id"})
		return
	}

	s := sessions.Default(c)
	key := visitorID(s)
	h.save(c, s)

	ctx, done := h.inflight.Begin(c.Request.Context(), key)
	defer done()

	articles, err := h.backend.ListArticles(ctx, id)
	if services.Superseded(ctx) {
		c.JSON(http.StatusConflict, gin.H{"status": "error", "error": "Superseded"})
		return
	}
	if err != nil {
		h.apiBackendError(c, "Failed to fetch articles", err)
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	c.JSON(http.StatusOK, articles)
}

// SaveArticle creates or edits an article from a JSON draft; a draft with an id is an edit.
func (h *Handler) SaveArticle(c *gin.Context) {
	var draft models.ArticleDraft
	if err := c.BindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid JSON"})
		return
	}

	result, err := h.backend.SaveArticle(c.Request.Context(), draft)
	if err != nil {
		h.apiBackendError(c, "Failed to save article", err)
		return
	}
	if result.Failed() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": models.StatusError})
		return
	}
	status := "created"
	if !draft.IsNew() {
		status = "saved"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *Handler) DeleteArticleAPI(c *gin.Context) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid article id"})
		return
	}
	if err := h.backend.DeleteArticle(c.Request.Context(), id); err != nil {
		h.apiBackendError(c, "Failed to delete article", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// FormState reports the visitor's form state.
func (h *Handler) FormState(c *gin.Context) {
	st := loadForm(sessions.Default(c))
	c.JSON(http.StatusOK, gin.H{
		"mode":       st.Mode,
		"article_id": st.ArticleID,
		"visible":    st.Visible(),
		"label":      st.Label(),
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
