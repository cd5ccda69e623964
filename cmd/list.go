package cmd

import (
	"fmt"
	"text/tabwriter"

	"noticias-cms/pkg/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var categoryID int64

var categoriasCmd = &cobra.Command{
	Use:   "categorias",
	Short: "List the categories served by the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		backend, err := newBackend(cfg, zap.NewNop())
		if err != nil {
			return err
		}

		categories, err := backend.ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNOME")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Nome)
		}
		return w.Flush()
	},
}

var noticiasCmd = &cobra.Command{
	Use:   "noticias",
	Short: "List the articles of a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		if categoryID <= 0 {
			return fmt.Errorf("--categoria is required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		backend, err := newBackend(cfg, zap.NewNop())
		if err != nil {
			return err
		}

		articles, err := backend.ListArticles(cmd.Context(), models.ID(categoryID))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATA\tEDITAVEL\tTITULO")
		for _, a := range articles {
			fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", a.ID, a.Data, bool(a.Editavel), a.Titulo)
		}
		return w.Flush()
	},
}

func init() {
	noticiasCmd.Flags().Int64Var(&categoryID, "categoria", 0, "category id")
	rootCmd.AddCommand(categoriasCmd, noticiasCmd)
}
