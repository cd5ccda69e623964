package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleDecoding(t *testing.T) {
	raw := `[
		{"id":10,"titulo":"T","subtitulo":"S","conteudo":"C","data":"2024-01-01","editavel":true},
		{"id":"11","titulo":"U","editavel":"1"},
		{"id":12,"editavel":0},
		{"id":13,"editavel":"0"},
		{"id":14}
	]`
	var articles []Article
	require.NoError(t, json.Unmarshal([]byte(raw), &articles))
	require.Len(t, articles, 5)

	assert.Equal(t, Article{ID: 10, Titulo: "T", Subtitulo: "S", Conteudo: "C", Data: "2024-01-01", Editavel: true}, articles[0])
	assert.Equal(t, ID(11), articles[1].ID)
	assert.True(t, bool(articles[1].Editavel))
	assert.False(t, bool(articles[2].Editavel))
	assert.False(t, bool(articles[3].Editavel))
	assert.False(t, bool(articles[4].Editavel))
}

func TestIDDecoding_Invalid(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
	assert.Error(t, json.Unmarshal([]byte(`1.5`), &id))

	require.NoError(t, json.Unmarshal([]byte(`null`), &id))
	assert.Zero(t, id)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)
	assert.Equal(t, "42", id.String())

	for _, bad := range []string{"", "0", "-3", "x"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestMutationResult(t *testing.T) {
	var r MutationResult
	require.NoError(t, json.Unmarshal([]byte(`{}`), &r))
	assert.False(t, r.Failed())

	require.NoError(t, json.Unmarshal([]byte(`{"status":"ok"}`), &r))
	assert.False(t, r.Failed())

	require.NoError(t, json.Unmarshal([]byte(`{"status":"erro"}`), &r))
	assert.True(t, r.Failed())
}

func TestDraftFromArticle(t *testing.T) {
	a := Article{ID: 10, Titulo: "T", Subtitulo: "S", Conteudo: "C"}
	d := DraftFromArticle(a, 3)

	assert.False(t, d.IsNew())
	assert.Equal(t, ArticleDraft{ID: 10, Titulo: "T", Subtitulo: "S", Conteudo: "C", IDCategoria: 3}, d)
	assert.True(t, ArticleDraft{Titulo: "x"}.IsNew())
}
