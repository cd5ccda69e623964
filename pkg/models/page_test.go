package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testCategories = []Category{{ID: 1, Nome: "Sports"}, {ID: 2, Nome: "Tech"}}

func TestNewFormView_SelectsDraftCategory(t *testing.T) {
	v := NewFormView(FormState{Mode: FormEditing, ArticleID: 9, CategoryID: 2}, ArticleDraft{ID: 9, IDCategoria: 2}, testCategories)

	assert.True(t, v.Visible())
	assert.Equal(t, LabelEdit, v.Label())
	assert.False(t, v.Options[0].Selected)
	assert.True(t, v.Options[1].Selected)
}

func TestNewFormView_DefaultsToFirstOption(t *testing.T) {
	v := NewFormView(FormState{Mode: FormCreating}, ArticleDraft{}, testCategories)
	assert.True(t, v.Options[0].Selected)
	assert.False(t, v.Options[1].Selected)

	v = NewFormView(FormState{Mode: FormCreating}, ArticleDraft{IDCategoria: 99}, testCategories)
	assert.True(t, v.Options[0].Selected)

	assert.Empty(t, NewFormView(FormState{Mode: FormCreating}, ArticleDraft{}, nil).Options)
}

func TestPageListing(t *testing.T) {
	p := Page{}
	assert.False(t, p.Listing())

	p.Current = &testCategories[0]
	assert.True(t, p.Listing())

	p.Form = NewFormView(FormState{Mode: FormCreating}, ArticleDraft{}, testCategories)
	assert.False(t, p.Listing())
}

func TestFindCategory(t *testing.T) {
	c, ok := FindCategory(testCategories, 2)
	assert.True(t, ok)
	assert.Equal(t, "Tech", c.Nome)

	_, ok = FindCategory(testCategories, 3)
	assert.False(t, ok)
}
