package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormState_Transitions(t *testing.T) {
	var hidden FormState
	assert.False(t, hidden.Visible())
	assert.Equal(t, LabelCreate, hidden.Label())

	creating := hidden.Show()
	assert.Equal(t, FormCreating, creating.Mode)
	assert.True(t, creating.Visible())
	assert.False(t, creating.Editing())
	assert.Equal(t, LabelCreate, creating.Label())

	editing := creating.Stamp(10, 1).Show()
	assert.Equal(t, FormEditing, editing.Mode)
	assert.True(t, editing.Editing())
	assert.Equal(t, ID(10), editing.ArticleID)
	assert.Equal(t, ID(1), editing.CategoryID)
	assert.Equal(t, LabelEdit, editing.Label())

	// re-stamping from any state moves to the new article
	assert.Equal(t, ID(11), editing.Stamp(11, 2).ArticleID)
	assert.Equal(t, ID(12), hidden.Stamp(12, 2).ArticleID)

	closed := editing.Remove()
	assert.Equal(t, FormHidden, closed.Mode)
	assert.Zero(t, closed.ArticleID)

	// the "new" action always ends in a blank create form
	assert.Equal(t, FormState{Mode: FormCreating}, editing.Remove().Show())
}

func TestFormState_EncodeDecode(t *testing.T) {
	for _, st := range []FormState{
		{Mode: FormHidden},
		{Mode: FormCreating},
		{Mode: FormEditing, ArticleID: 10, CategoryID: 1},
	} {
		assert.Equal(t, st, DecodeFormState(st.Encode()))
	}
}

func TestDecodeFormState_Garbage(t *testing.T) {
	assert.Equal(t, FormState{Mode: FormHidden}, DecodeFormState(""))
	assert.Equal(t, FormState{Mode: FormHidden}, DecodeFormState("{not json"))
	assert.Equal(t, FormState{Mode: FormHidden}, DecodeFormState(`{"mode":"weird"}`))
	assert.Equal(t, FormState{Mode: FormCreating}, DecodeFormState(`{"mode":"editing"}`))
	assert.Equal(t, FormState{Mode: FormCreating}, DecodeFormState(`{"mode":"creating","article_id":4}`))
}

func TestFormState_Submitted(t *testing.T) {
	editing := FormState{Mode: FormEditing, ArticleID: 10, CategoryID: 1}
	creating := FormState{Mode: FormCreating}

	tests := []struct {
		name    string
		session FormState
		mode    FormMode
		id      ID
		want    FormState
		ok      bool
	}{
		{"create form while session edits", editing, FormCreating, 0, creating, true},
		{"form without mode", editing, "", 0, creating, true},
		{"create form while hidden", FormState{Mode: FormHidden}, FormCreating, 0, creating, true},
		{"matching edit", editing, FormEditing, 10, editing, true},
		{"edit of another article", editing, FormEditing, 11, editing, false},
		{"edit after session reset", creating, FormEditing, 10, creating, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.session.Submitted(tt.mode, tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
