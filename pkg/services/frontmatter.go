package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"noticias-cms/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Export formats accepted by ExportArticle.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

var (
	ErrUnknownFrontMatter = errors.New("unknown front matter format")
	ErrMissingTitle       = errors.New("front matter has no title")
)

// fenced front matter formats, tried in order
var fences = []struct {
	fence     string
	format    string
	unmarshal func([]byte, interface{}) error
}{
	{"---\n", FormatYAML, yaml.Unmarshal},
	{"+++\n", FormatTOML, toml.Unmarshal},
}

// ExportArticle renders an article as a markdown file with front matter in
// the given format. JSON exports carry the body under a "body" key.
func ExportArticle(a models.Article, category models.Category, format string) ([]byte, error) {
	fm := map[string]interface{}{
		"id":         int64(a.ID),
		"title":      a.Titulo,
		"subtitle":   a.Subtitulo,
		"date":       a.Data,
		"categories": []string{category.Nome},
	}
	if format == FormatJSON {
		fm["body"] = a.Conteudo
		return ConstructFileContent(fm, "", format)
	}
	return ConstructFileContent(fm, a.Conteudo, format)
}

// ExportFilename is the attachment name for an exported article.
func ExportFilename(a models.Article, format string) string {
	if format == FormatJSON {
		return fmt.Sprintf("noticia-%d.json", a.ID)
	}
	return fmt.Sprintf("noticia-%d.md", a.ID)
}

// DraftFromFile reads an exported article back into a create draft for the
// given category. Ids in the file are ignored; an import never edits.
func DraftFromFile(content []byte, categoryID models.ID) (models.ArticleDraft, error) {
	fm, body, _, err := ParseFrontMatter(content)
	if err != nil {
		return models.ArticleDraft{}, err
	}
	title := stringField(fm, "title")
	if title == "" {
		return models.ArticleDraft{}, ErrMissingTitle
	}
	return models.ArticleDraft{
		Titulo:      title,
		Subtitulo:   stringField(fm, "subtitle"),
		Conteudo:    body,
		IDCategoria: categoryID,
	}, nil
}

func stringField(fm map[string]interface{}, key string) string {
	switch v := fm[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// ParseFrontMatter splits content into its front matter, body and format.
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	for _, f := range fences {
		if !strings.HasPrefix(text, f.fence) {
			continue
		}
		head, body, found := strings.Cut(text[len(f.fence):], f.fence)
		if !found {
			return nil, "", "", fmt.Errorf("%s front matter is not closed", f.format)
		}
		var fm map[string]interface{}
		if err := f.unmarshal([]byte(head), &fm); err != nil {
			return nil, "", "", fmt.Errorf("decoding %s front matter: %w", f.format, err)
		}
		return normalizeFrontMatter(fm), strings.TrimSpace(body), f.format, nil
	}

	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		var fm map[string]interface{}
		if err := json.Unmarshal([]byte(text), &fm); err != nil {
			return nil, "", "", fmt.Errorf("decoding json front matter: %w", err)
		}
		body, _ := fm["body"].(string)
		delete(fm, "body")
		return fm, body, FormatJSON, nil
	}

	return nil, "", "", ErrUnknownFrontMatter
}

// ConstructFileContent writes front matter followed by the body. JSON output
// is the front matter object alone.
func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	head := normalizeFrontMatter(fm)

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(head); err != nil {
			return nil, err
		}
		enc.Close()
		buf.WriteString("---\n")
	case FormatTOML:
		buf.WriteString("+++\n")
		if err := toml.NewEncoder(&buf).Encode(head); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(head); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		fmt.Fprintf(&buf, "\n%s\n", body)
	}
	return buf.Bytes(), nil
}

// normalizeFrontMatter never returns nil, so encoders always get an object.
func normalizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if out, ok := normalizeValue(fm).(map[string]interface{}); ok && out != nil {
		return out
	}
	return map[string]interface{}{}
}

// normalizeValue converts decoder-specific maps and string slices into the
// generic forms every encoder in this file accepts.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		if t == nil {
			return nil
		}
		out := make(map[string]interface{}, len(t))
		for k, inner := range t {
			out[k] = normalizeValue(inner)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, inner := range t {
			out[fmt.Sprint(k)] = normalizeValue(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, inner := range t {
			out = append(out, normalizeValue(inner))
		}
		return out
	case []string:
		out := make([]interface{}, 0, len(t))
		for _, s := range t {
			out = append(out, s)
		}
		return out
	}
	return v
}
