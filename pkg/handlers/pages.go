package handlers

import (
	"errors"
	"net/http"

	"noticias-cms/pkg/models"
	"noticias-cms/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MsgInvalidCategory = "Categoria inválida."
	MsgStaleForm       = "O formulário foi alterado em outra aba. Confira os dados e envie novamente."
)

// submission is the posted article form. Modo and ID echo the state the form
// was rendered under and are checked against the session stamp.
type submission struct {
	Modo        string `form:"modo"`
	ID          string `form:"id"`
	Titulo      string `form:"titulo"`
	Subtitulo   string `form:"subtitulo"`
	Conteudo    string `form:"conteudo"`
	IDCategoria string `form:"idCategoria"`
}

func (h *Handler) newPage(categories []models.Category) models.Page {
	return models.Page{
		Categories:  categories,
		Form:        models.NewFormView(models.FormState{Mode: models.FormHidden}, models.ArticleDraft{}, categories),
		Notify:      h.notify,
		AuthEnabled: h.oauth != nil,
	}
}

func (h *Handler) render(c *gin.Context, s sessions.Session, page models.Page, status int) {
	page.Toasts = append(popToasts(s), page.Toasts...)
	h.save(c, s)
	c.HTML(status, "index.html", page)
}

func (h *Handler) redirect(c *gin.Context, s sessions.Session, location string) {
	h.save(c, s)
	c.Redirect(http.StatusSeeOther, location)
}

func (h *Handler) backendFailure(c *gin.Context, msg string, err error) models.Toast {
	c.Error(err)
	h.logger.Warn(msg, zap.Error(err), zap.String("request_id", requestID(c)))
	return models.Toast{Kind: models.ToastError, Message: MsgBackendFailed}
}

// Index renders the menu and, when open, the article form. Editing forms are
// populated from the backend listing of the stamped article's category.
func (h *Handler) Index(c *gin.Context) {
	s := sessions.Default(c)
	st := loadForm(s)
	ctx := c.Request.Context()

	var (
		g          errgroup.Group
		categories []models.Category
		article    models.Article
		catErr     error
		artErr     error
	)
	g.Go(func() error {
		categories, catErr = h.backend.ListCategories(ctx)
		return catErr
	})
	if st.Editing() {
		g.Go(func() error {
			article, artErr = h.backend.FindArticle(ctx, st.CategoryID, st.ArticleID)
			return artErr
		})
	}
	g.Wait()

	page := h.newPage(categories)
	if catErr != nil {
		page.Toasts = append(page.Toasts, h.backendFailure(c, "listing categories", catErr))
	}

	switch {
	case st.Editing() && artErr == nil:
		page.Form = models.NewFormView(st, models.DraftFromArticle(article, st.CategoryID), categories)
	case st.Editing() && errors.Is(artErr, services.ErrArticleNotFound):
		page.Toasts = append(page.Toasts, models.Toast{Kind: models.ToastError, Message: MsgNotFound})
		storeForm(s, st.Remove())
	case st.Editing():
		page.Toasts = append(page.Toasts, h.backendFailure(c, "loading article for edit", artErr))
	case st.Visible():
		page.Form = models.NewFormView(st, models.ArticleDraft{}, categories)
	}
	if page.Form.Visible() {
		page.Header = page.Form.Label()
	}

	h.render(c, s, page, http.StatusOK)
}

// retryParam marks a listing reissued after being superseded.
const retryParam = "refazer"

// Category closes the form and lists the articles of one category. A newer
// listing request from the same visitor cancels this one, which then redirects
// to a retry of itself.
func (h *Handler) Category(c *gin.Context) {
	s := sessions.Default(c)
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		addToast(s, models.ToastError, MsgInvalidCategory)
		h.redirect(c, s, "/")
		return
	}
	storeForm(s, loadForm(s).Remove())

	// retries are not registered, so two tabs cannot keep cancelling each other
	ctx := c.Request.Context()
	if c.Query(retryParam) == "" {
		var done func()
		ctx, done = h.inflight.Begin(ctx, visitorID(s))
		defer done()
	}

	var (
		g          errgroup.Group
		categories []models.Category
		articles   []models.Article
		catErr     error
		artErr     error
	)
	g.Go(func() error {
		categories, catErr = h.backend.ListCategories(ctx)
		return catErr
	})
	g.Go(func() error {
		articles, artErr = h.backend.ListArticles(ctx, id)
		return artErr
	})
	g.Wait()

	if services.Superseded(ctx) {
		h.redirect(c, s, "/categorias/"+id.String()+"?"+retryParam+"=1")
		return
	}

	page := h.newPage(categories)
	if catErr != nil {
		page.Toasts = append(page.Toasts, h.backendFailure(c, "listing categories", catErr))
	}
	if artErr != nil {
		page.Toasts = append(page.Toasts, h.backendFailure(c, "listing articles", artErr))
	}

	current := models.Category{ID: id}
	if found, ok := models.FindCategory(categories, id); ok {
		current = found
	}
	page.Current = &current
	page.Header = current.Nome
	page.Articles = services.BuildCards(articles, id)

	h.render(c, s, page, http.StatusOK)
}

// NewForm opens a blank form in create mode.
func (h *Handler) NewForm(c *gin.Context) {
	s := sessions.Default(c)
	storeForm(s, loadForm(s).Remove().Show())
	h.redirect(c, s, "/")
}

// CloseForm hides the form and drops any edit stamp.
func (h *Handler) CloseForm(c *gin.Context) {
	s := sessions.Default(c)
	storeForm(s, loadForm(s).Remove())
	h.redirect(c, s, "/")
}

// EditArticle stamps the form with the article and reveals it.
func (h *Handler) EditArticle(c *gin.Context) {
	s := sessions.Default(c)
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		addToast(s, models.ToastError, MsgNotFound)
		h.redirect(c, s, "/")
		return
	}
	categoryID, err := models.ParseID(c.PostForm("categoria"))
	if err != nil {
		addToast(s, models.ToastError, MsgInvalidCategory)
		h.redirect(c, s, "/")
		return
	}
	storeForm(s, loadForm(s).Stamp(id, categoryID).Show())
	h.redirect(c, s, "/")
}

// DeleteArticle removes an article and returns to its category. The backend
// reply is not inspected, so only transport failures are reported.
func (h *Handler) DeleteArticle(c *gin.Context) {
	s := sessions.Default(c)
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		addToast(s, models.ToastError, MsgNotFound)
		h.redirect(c, s, "/")
		return
	}

	if err := h.backend.DeleteArticle(c.Request.Context(), id); err != nil {
		t := h.backendFailure(c, "deleting article", err)
		addToast(s, t.Kind, t.Message)
	} else {
		addToast(s, models.ToastSuccess, MsgDeleted)
	}

	target := "/"
	if categoryID, err := models.ParseID(c.PostForm("categoria")); err == nil {
		target = "/categorias/" + categoryID.String()
	}
	h.redirect(c, s, target)
}

// SubmitForm sends the form to the create endpoint, or to the edit endpoint
// when it was rendered for the article the session is stamped with. A form
// rendered in create mode always creates.
func (h *Handler) SubmitForm(c *gin.Context) {
	s := sessions.Default(c)

	var in submission
	if err := c.ShouldBind(&in); err != nil {
		c.Error(err)
		h.renderForm(c, s, loadForm(s).Show(), models.ArticleDraft{}, MsgSaveFailed, http.StatusBadRequest)
		return
	}

	draft := models.ArticleDraft{
		Titulo:    in.Titulo,
		Subtitulo: in.Subtitulo,
		Conteudo:  in.Conteudo,
	}
	if categoryID, err := models.ParseID(in.IDCategoria); err == nil {
		draft.IDCategoria = categoryID
	}

	postedID, _ := models.ParseID(in.ID)
	st, ok := loadForm(s).Submitted(models.FormMode(in.Modo), postedID)
	if !ok {
		if postedID == 0 {
			addToast(s, models.ToastError, MsgStaleForm)
			storeForm(s, st.Remove())
			h.redirect(c, s, "/")
			return
		}
		// the session moved on to another article; show what was posted under
		// its own stamp so a resend edits the article the user was looking at
		draft.ID = postedID
		h.renderForm(c, s, st.Stamp(postedID, draft.IDCategoria), draft, MsgStaleForm, http.StatusConflict)
		return
	}
	if st.Editing() {
		draft.ID = st.ArticleID
	}

	result, err := h.backend.SaveArticle(c.Request.Context(), draft)
	switch {
	case err != nil:
		h.backendFailure(c, "saving article", err)
		h.renderForm(c, s, st, draft, MsgBackendFailed, http.StatusBadGateway)
	case result.Failed():
		h.renderForm(c, s, st, draft, MsgSaveFailed, http.StatusUnprocessableEntity)
	default:
		msg := MsgCreated
		if !draft.IsNew() {
			msg = MsgEdited
		}
		addToast(s, models.ToastSuccess, msg)
		storeForm(s, st.Remove())
		h.redirect(c, s, "/")
	}
}

// renderForm shows the form again with what the user submitted.
func (h *Handler) renderForm(c *gin.Context, s sessions.Session, st models.FormState, draft models.ArticleDraft, msg string, status int) {
	categories, err := h.backend.ListCategories(c.Request.Context())
	if err != nil {
		h.backendFailure(c, "listing categories", err)
	}
	storeForm(s, st)

	page := h.newPage(categories)
	page.Form = models.NewFormView(st, draft, categories)
	page.Header = page.Form.Label()
	page.Toasts = append(page.Toasts, models.Toast{Kind: models.ToastError, Message: msg})
	h.render(c, s, page, status)
}
