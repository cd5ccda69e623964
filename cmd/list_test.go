package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsBackend(t *testing.T) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/noticias/categorias/listar.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"nome":"Sports"},{"id":2,"nome":"Tech"}]`))
	})
	mux.HandleFunc("/noticias/noticias/listar.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") != "1" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"id":10,"titulo":"Final","data":"2024-01-01","editavel":"1"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Setenv("NOTICIAS_BACKEND_URL", srv.URL+"/noticias/")
}

func run(t *testing.T, args ...string) ([][]string, error) {
	t.Helper()
	categoryID = 0
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "absent.yml")))
	err := rootCmd.Execute()

	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows, err
}

func TestCategoriasCommand(t *testing.T) {
	newsBackend(t)

	rows, err := run(t, "categorias")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ID", "NOME"},
		{"1", "Sports"},
		{"2", "Tech"},
	}, rows)
}

func TestNoticiasCommand(t *testing.T) {
	newsBackend(t)

	rows, err := run(t, "noticias", "--categoria", "1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ID", "DATA", "EDITAVEL", "TITULO"},
		{"10", "2024-01-01", "true", "Final"},
	}, rows)
}

func TestNoticiasCommand_RequiresCategory(t *testing.T) {
	newsBackend(t)

	_, err := run(t, "noticias")
	assert.ErrorContains(t, err, "--categoria")
}

func TestCommands_BackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	t.Setenv("NOTICIAS_BACKEND_URL", srv.URL)

	_, err := run(t, "categorias")
	assert.Error(t, err)
}
