package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"noticias-cms/pkg/models"
	"noticias-cms/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// ExportArticle serves an article as a markdown file with front matter.
func (h *Handler) ExportArticle(c *gin.Context) {
	id, err := models.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid article id"})
		return
	}
	categoryID, err := models.ParseID(c.Query("categoria"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Invalid category id"})
		return
	}
	format := c.DefaultQuery("formato", services.FormatYAML)
	switch format {
	case services.FormatYAML, services.FormatTOML, services.FormatJSON:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Unsupported format: " + format})
		return
	}

	ctx := c.Request.Context()
	var (
		g          errgroup.Group
		categories []models.Category
		article    models.Article
	)
	g.Go(func() error {
		var err error
		categories, err = h.backend.ListCategories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		article, err = h.backend.FindArticle(ctx, categoryID, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "Article not found"})
			return
		}
		h.backendFailure(c, "exporting article", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "error": "Backend unavailable"})
		return
	}

	category, ok := models.FindCategory(categories, categoryID)
	if !ok {
		category = models.Category{ID: categoryID}
	}

	out, err := services.ExportArticle(article, category, format)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Export failed: " + err.Error()})
		return
	}

	contentType := "text/markdown; charset=utf-8"
	if format == services.FormatJSON {
		contentType = "application/json; charset=utf-8"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.ExportFilename(article, format)))
	c.Data(http.StatusOK, contentType, out)
}

const maxImportSize = 1 << 20

// ImportArticle creates an article in the posted category from an uploaded
// export file.
func (h *Handler) ImportArticle(c *gin.Context) {
	s := sessions.Default(c)
	categoryID, err := models.ParseID(c.PostForm("categoria"))
	if err != nil {
		addToast(s, models.ToastError, MsgInvalidCategory)
		h.redirect(c, s, "/")
		return
	}
	target := "/categorias/" + categoryID.String()

	content, err := readUpload(c, "arquivo")
	if err != nil {
		c.Error(err)
		addToast(s, models.ToastError, MsgImportInvalid)
		h.redirect(c, s, target)
		return
	}
	draft, err := services.DraftFromFile(content, categoryID)
	if err != nil {
		c.Error(err)
		addToast(s, models.ToastError, MsgImportInvalid)
		h.redirect(c, s, target)
		return
	}

	result, err := h.backend.SaveArticle(c.Request.Context(), draft)
	switch {
	case err != nil:
		t := h.backendFailure(c, "importing article", err)
		addToast(s, t.Kind, t.Message)
	case result.Failed():
		addToast(s, models.ToastError, MsgSaveFailed)
	default:
		addToast(s, models.ToastSuccess, MsgImported)
	}
	h.redirect(c, s, target)
}

func readUpload(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	if fh.Size > maxImportSize {
		return nil, fmt.Errorf("upload %s is %d bytes, limit is %d", fh.Filename, fh.Size, maxImportSize)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxImportSize))
}
