package models

import (
	"encoding/json"
)

// FormMode is the lifecycle state of the article form.
type FormMode string

const (
	FormHidden   FormMode = "hidden"
	FormCreating FormMode = "creating"
	FormEditing  FormMode = "editing"
)

const (
	LabelCreate = "Cadastrar"
	LabelEdit   = "Editar"
)

// FormState replaces the id attribute the form used to carry. The edit stamp
// (ArticleID) is only meaningful while Mode is FormEditing.
type FormState struct {
	Mode       FormMode `json:"mode"`
	ArticleID  ID       `json:"article_id,omitempty"`
	CategoryID ID       `json:"category_id,omitempty"`
}

// Visible reports whether the form is on screen.
func (s FormState) Visible() bool {
	return s.Mode == FormCreating || s.Mode == FormEditing
}

func (s FormState) Editing() bool {
	return s.Mode == FormEditing && s.ArticleID != 0
}

// Label is the form header and submit button text.
func (s FormState) Label() string {
	if s.Editing() {
		return LabelEdit
	}
	return LabelCreate
}

// Show reveals the form. An edit stamp survives; otherwise the form enters create mode.
func (s FormState) Show() FormState {
	if s.Editing() {
		return s
	}
	return FormState{Mode: FormCreating}
}

// Remove hides the form and drops the edit stamp.
func (s FormState) Remove() FormState {
	return FormState{Mode: FormHidden}
}

// Stamp marks the form as editing the given article of the given category.
func (s FormState) Stamp(articleID, categoryID ID) FormState {
	return FormState{Mode: FormEditing, ArticleID: articleID, CategoryID: categoryID}
}

// Submitted resolves the state a posted form was rendered under against the
// session state s. A create form always creates. An edit form edits only while
// s still carries the same stamp; otherwise ok is false.
func (s FormState) Submitted(mode FormMode, articleID ID) (st FormState, ok bool) {
	if mode != FormEditing {
		return FormState{Mode: FormCreating}, true
	}
	if s.Editing() && s.ArticleID == articleID {
		return s, true
	}
	return s, false
}

// Encode serializes the state for storage in a session.
func (s FormState) Encode() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// DecodeFormState is the inverse of Encode. Anything unreadable decodes to a hidden form.
func DecodeFormState(raw string) FormState {
	var s FormState
	if raw == "" || json.Unmarshal([]byte(raw), &s) != nil {
		return FormState{Mode: FormHidden}
	}
	switch s.Mode {
	case FormCreating:
		return FormState{Mode: FormCreating}
	case FormEditing:
		if s.ArticleID == 0 {
			return FormState{Mode: FormCreating}
		}
		return s
	default:
		return FormState{Mode: FormHidden}
	}
}
