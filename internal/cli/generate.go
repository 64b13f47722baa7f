package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"examgen/internal/app"
	"examgen/internal/domain"
)

// NewGenerateCmd builds the non-interactive generate/export subcommand.
func NewGenerateCmd(configPath *string) *cobra.Command {
	var (
		grade      string
		questions  int
		testType   string
		essayPct   int
		preview    bool
		outputDir  string
		strictFont bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an exam and export it as PDF (or print a preview)",
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := domain.DurationByQuestions(questions)
			if err != nil {
				return err
			}
			kind, err := domain.ParseTestType(testType)
			if err != nil {
				return err
			}

			d, err := buildDeps(*configPath, outputDir, strictFont)
			if err != nil {
				return err
			}
			defer d.close()

			exam, err := d.service.Build(cmd.Context(), app.BuildRequest{
				GradeLabel:    grade,
				DurationLabel: duration.Label,
				TestType:      kind,
				EssayPercent:  float64(essayPct),
			})
			if err != nil {
				return err
			}

			if preview {
				fmt.Fprint(cmd.OutOrStdout(), d.service.PreviewText(exam))
				return nil
			}

			export, err := d.service.Export(cmd.Context(), exam)
			if err != nil {
				return err
			}
			path, err := d.service.WriteExport(export)
			if err != nil {
				return err
			}
			if export.DegradedFont {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: no Unicode font available, Vietnamese text may be garbled")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s (%d pages)\n", path, export.PageCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&grade, "grade", "Lớp 1", "grade label (Lớp 1 … Lớp 10)")
	cmd.Flags().IntVar(&questions, "questions", 30, "question count (30, 50 or 70)")
	cmd.Flags().StringVar(&testType, "type", string(domain.TestTypeMultipleChoice), "test type: mc|essay|mixed")
	cmd.Flags().IntVar(&essayPct, "essay-pct", domain.DefaultMixedEssayPercent, "essay percentage for mixed exams (0-100, step 5)")
	cmd.Flags().BoolVar(&preview, "preview", false, "print a text preview instead of exporting")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVar(&strictFont, "strict-font", false, "fail instead of degrading when no Unicode font is available")
	return cmd
}
