package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"seo-spinner/internal/models"
	"seo-spinner/internal/services"
	"seo-spinner/internal/utils"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		businessID int64
		serviceIDs string
		areaIDs    string
		tmplIDs    string
		prompt     string
		tone       string
		words      int
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate content for every service x area x template combination",
		Example: `  spinnerctl generate --business 1 --services 1,2 --areas 3,4,5 --templates 1,3
  spinnerctl generate --business 1 --services 1 --areas 3 --templates 2 --prompt "mention 24/7 emergency service"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.GenerationRequest{
				BusinessID:      businessID,
				Tone:            tone,
				WordCountTarget: words,
				CustomPrompt:    prompt,
			}
			var err error
			if req.ServiceIDs, err = utils.ParseIDList(serviceIDs); err != nil {
				return fmt.Errorf("--services: %w", err)
			}
			if req.ServiceAreaIDs, err = utils.ParseIDList(areaIDs); err != nil {
				return fmt.Errorf("--areas: %w", err)
			}
			if req.TemplateIDs, err = utils.ParseIDList(tmplIDs); err != nil {
				return fmt.Errorf("--templates: %w", err)
			}

			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			enhancer, closeEnhancer := env.enhancer(cmd.Context())
			defer closeEnhancer()

			svc := services.NewGenerationService(services.NewContentStore(env.db), enhancer, env.cfg, env.logr.Logger)
			result, err := svc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSERVICE\tAREA\tSECTION\tWORDS\tSEO\tENHANCED")
			for _, g := range result.Generated {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%t\n", g.ID, g.Service, g.Area, g.Section, g.WordCount, g.SEOScore, g.Enhanced)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nGenerated %d of %d combinations\n", len(result.Generated), result.TotalCombinations)
			if result.Failed() > 0 {
				return fmt.Errorf("%d combinations failed", result.Failed())
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&businessID, "business", 0, "business id (required)")
	cmd.Flags().StringVar(&serviceIDs, "services", "", "comma-separated service ids (required)")
	cmd.Flags().StringVar(&areaIDs, "areas", "", "comma-separated service area ids (required)")
	cmd.Flags().StringVar(&tmplIDs, "templates", "", "comma-separated template ids (required)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "custom requirements; enables enhancement when a model is configured")
	cmd.Flags().StringVar(&tone, "tone", "", "professional, friendly, authoritative or casual")
	cmd.Flags().IntVar(&words, "words", 0, "target word count for enhancement")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	for _, f := range []string{"business", "services", "areas", "templates"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
