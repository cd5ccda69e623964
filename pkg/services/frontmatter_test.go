package services

import (
	"testing"

	"noticias-cms/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportArticle_Formats(t *testing.T) {
	article := models.Article{
		ID:        10,
		Titulo:    "Final",
		Subtitulo: "Resumo",
		Conteudo:  "<p>Texto</p>",
		Data:      "2024-01-01",
	}
	category := models.Category{ID: 1, Nome: "Sports"}

	for _, format := range []string{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			out, err := ExportArticle(article, category, format)
			require.NoError(t, err)

			fm, body, parsedFormat, err := ParseFrontMatter(out)
			require.NoError(t, err)
			assert.Equal(t, format, parsedFormat)
			assert.Equal(t, "Final", fm["title"])
			assert.Equal(t, "Resumo", fm["subtitle"])
			assert.Equal(t, "2024-01-01", fm["date"])
			assert.Equal(t, []interface{}{"Sports"}, fm["categories"])
			assert.Equal(t, "<p>Texto</p>", body)
		})
	}
}

func TestExportArticle_UnknownFormat(t *testing.T) {
	_, err := ExportArticle(models.Article{ID: 1}, models.Category{}, "xml")
	assert.Error(t, err)
}

func TestExportFilename(t *testing.T) {
	a := models.Article{ID: 7}
	assert.Equal(t, "noticia-7.md", ExportFilename(a, FormatTOML))
	assert.Equal(t, "noticia-7.json", ExportFilename(a, FormatJSON))
}

func TestParseFrontMatter_Unknown(t *testing.T) {
	_, _, _, err := ParseFrontMatter([]byte("just text"))
	assert.ErrorIs(t, err, ErrUnknownFrontMatter)
}

func TestDraftFromFile(t *testing.T) {
	article := models.Article{ID: 10, Titulo: "Final", Subtitulo: "Resumo", Conteudo: "<p>Texto</p>"}

	for _, format := range []string{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			out, err := ExportArticle(article, models.Category{ID: 1, Nome: "Sports"}, format)
			require.NoError(t, err)

			draft, err := DraftFromFile(out, 3)
			require.NoError(t, err)
			assert.True(t, draft.IsNew())
			assert.Equal(t, "Final", draft.Titulo)
			assert.Equal(t, "Resumo", draft.Subtitulo)
			assert.Equal(t, "<p>Texto</p>", draft.Conteudo)
			assert.Equal(t, models.ID(3), draft.IDCategoria)
		})
	}
}

func TestDraftFromFile_Rejects(t *testing.T) {
	_, err := DraftFromFile([]byte("---\nsubtitle: only\n---\nbody\n"), 1)
	assert.ErrorIs(t, err, ErrMissingTitle)

	_, err = DraftFromFile([]byte("---\ntitle: open\nbody never closes\n"), 1)
	assert.Error(t, err)

	_, err = DraftFromFile([]byte("plain text"), 1)
	assert.ErrorIs(t, err, ErrUnknownFrontMatter)
}

func TestConstructFileContent_NilFrontMatter(t *testing.T) {
	out, err := ConstructFileContent(nil, "", FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(out))
}
