package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"seo-spinner/internal/content"
	"seo-spinner/internal/services"

	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect content templates",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List active templates and the placeholders they use",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			templates, err := services.NewContentService(env.db).ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSECTION\tNAME\tWORDS\tPLACEHOLDERS")
			for _, t := range templates {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
					t.ID, t.SectionType, t.Name, t.WordCountTarget,
					strings.Join(content.Tokens(t.TemplateContent), ","))
			}
			return tw.Flush()
		},
	})
	return cmd
}
