package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"noticias-cms/pkg/models"
)

// Backend endpoint paths, relative to the configured base URL.
const (
	PathListCategories = "categorias/listar.php"
	PathListArticles   = "noticias/listar.php"
	PathDeleteArticle  = "noticias/deletar.php"
	PathCreateArticle  = "noticias/cadastrar.php"
	PathEditArticle    = "noticias/editar.php"
)

var ErrArticleNotFound = errors.New("article not found")

func (b *Backend) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := b.Get(ctx, PathListCategories, "", &categories); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

func (b *Backend) ListArticles(ctx context.Context, categoryID models.ID) ([]models.Article, error) {
	var articles []models.Article
	if err := b.Get(ctx, PathListArticles, categoryID.String(), &articles); err != nil {
		return nil, fmt.Errorf("listing articles of category %d: %w", categoryID, err)
	}
	return articles, nil
}

// FindArticle looks an article up in its category listing; the backend has no
// single-article endpoint.
func (b *Backend) FindArticle(ctx context.Context, categoryID, articleID models.ID) (models.Article, error) {
	articles, err := b.ListArticles(ctx, categoryID)
	if err != nil {
		return models.Article{}, err
	}
	for _, a := range articles {
		if a.ID == articleID {
			return a, nil
		}
	}
	return models.Article{}, fmt.Errorf("article %d in category %d: %w", articleID, categoryID, ErrArticleNotFound)
}

// DeleteArticle asks the backend to delete an article. The response body
// carries no reliable outcome and is ignored; only transport failures are reported.
func (b *Backend) DeleteArticle(ctx context.Context, id models.ID) error {
	if err := b.Get(ctx, PathDeleteArticle, id.String(), nil); err != nil {
		return fmt.Errorf("deleting article %d: %w", id, err)
	}
	return nil
}

// DraftPayload is the form-encoded body of a create or edit request. The id
// field is only present for drafts that already exist.
func DraftPayload(d models.ArticleDraft) url.Values {
	v := url.Values{}
	if !d.IsNew() {
		v.Set("id", d.ID.String())
	}
	v.Set("titulo", d.Titulo)
	v.Set("subtitulo", d.Subtitulo)
	v.Set("conteudo", d.Conteudo)
	v.Set("idCategoria", d.IDCategoria.String())
	return v
}

// SaveArticle creates the draft, or edits it when it carries an id.
func (b *Backend) SaveArticle(ctx context.Context, d models.ArticleDraft) (models.MutationResult, error) {
	path := PathCreateArticle
	if !d.IsNew() {
		path = PathEditArticle
	}
	var result models.MutationResult
	if err := b.Post(ctx, path, DraftPayload(d), &result); err != nil {
		return models.MutationResult{}, fmt.Errorf("saving article: %w", err)
	}
	return result, nil
}
