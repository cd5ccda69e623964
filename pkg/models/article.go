package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StatusError is the value the backend puts in "status" when a mutation fails.
const StatusError = "erro"

// ID is a backend identifier. The backend sends it either as a JSON number or
// as a numeric string.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n)
	return nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID parses a path or form value into an ID. Zero and negative values are rejected.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return ID(n), nil
}

// Flag is the permission bit the backend sets on articles. Booleans, numbers
// and strings are accepted.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		*f = !(s == "" || s == "0" || s == "false")
	default:
		return fmt.Errorf("invalid flag %s", data)
	}
	return nil
}

// Category groups articles. It is both a menu entry and a form option.
type Category struct {
	ID   ID     `json:"id"`
	Nome string `json:"nome"`
}

// Article is a news item as listed by the backend.
type Article struct {
	ID        ID     `json:"id"`
	Titulo    string `json:"titulo"`
	Subtitulo string `json:"subtitulo"`
	Conteudo  string `json:"conteudo"`
	Data      string `json:"data"`
	Editavel  Flag   `json:"editavel"`
}

// ArticleDraft is the payload sent to the create and edit endpoints.
// A zero ID means the article has not been persisted yet.
type ArticleDraft struct {
	ID          ID     `json:"id,omitempty" form:"-"`
	Titulo      string `json:"titulo" form:"titulo"`
	Subtitulo   string `json:"subtitulo" form:"subtitulo"`
	Conteudo    string `json:"conteudo" form:"conteudo"`
	IDCategoria ID     `json:"idCategoria" form:"-"`
}

// IsNew reports whether the draft should be created rather than edited.
func (d ArticleDraft) IsNew() bool {
	return d.ID == 0
}

// DraftFromArticle returns the form contents for editing a.
func DraftFromArticle(a Article, categoryID ID) ArticleDraft {
	return ArticleDraft{
		ID:          a.ID,
		Titulo:      a.Titulo,
		Subtitulo:   a.Subtitulo,
		Conteudo:    a.Conteudo,
		IDCategoria: categoryID,
	}
}

// MutationResult is the body returned by the create and edit endpoints.
type MutationResult struct {
	Status string `json:"status,omitempty"`
}

// Failed reports whether the backend rejected the mutation. A missing status is a success.
func (r MutationResult) Failed() bool {
	return r.Status == StatusError
}
