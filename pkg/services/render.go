package services

import (
	"html/template"

	"noticias-cms/pkg/models"

	"github.com/microcosm-cc/bluemonday"
)

// Article bodies are authored as HTML fragments; only user-generated-content
// markup survives.
var bodyPolicy = bluemonday.UGCPolicy()

// RenderBody sanitizes an article body for direct inclusion in a page.
func RenderBody(raw string) template.HTML {
	return template.HTML(bodyPolicy.Sanitize(raw))
}

// BuildCards prepares the articles of a category for display.
func BuildCards(articles []models.Article, categoryID models.ID) []models.ArticleCard {
	cards := make([]models.ArticleCard, 0, len(articles))
	for _, a := range articles {
		cards = append(cards, models.ArticleCard{
			Article:    a,
			CategoryID: categoryID,
			Body:       RenderBody(a.Conteudo),
		})
	}
	return cards
}
