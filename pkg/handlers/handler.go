package handlers

import (
	"context"

	"noticias-cms/pkg/models"
	"noticias-cms/pkg/services"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// User-facing notification texts.
const (
	MsgCreated       = "Notícia criada com sucesso."
	MsgEdited        = "Notícia alterada com sucesso."
	MsgDeleted       = "Notícia removida com sucesso"
	MsgSaveFailed    = "Erro ao adicionar a notícia."
	MsgBackendFailed = "Falha de comunicação com o servidor."
	MsgNotFound      = "Notícia não encontrada."
	MsgImported      = "Notícia importada com sucesso."
	MsgImportInvalid = "Arquivo de importação inválido."
)

// NewsBackend is the subset of the backend client the handlers use.
type NewsBackend interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListArticles(ctx context.Context, categoryID models.ID) ([]models.Article, error)
	FindArticle(ctx context.Context, categoryID, articleID models.ID) (models.Article, error)
	DeleteArticle(ctx context.Context, id models.ID) error
	SaveArticle(ctx context.Context, d models.ArticleDraft) (models.MutationResult, error)
}

type Handler struct {
	backend  NewsBackend
	inflight *services.Inflight
	logger   *zap.Logger
	notify   models.NotifyOptions
	oauth    *oauth2.Config
}

func NewHandler(backend NewsBackend, logger *zap.Logger, notify models.NotifyOptions, oauth *oauth2.Config) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		backend:  backend,
		inflight: services.NewInflight(),
		logger:   logger,
		notify:   notify,
		oauth:    oauth,
	}
}
