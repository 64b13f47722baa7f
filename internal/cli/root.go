package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("EXAMGEN_CONFIG")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "examgen",
		Short: "Mock English test generator with PDF export",
		Long: "examgen configures a mock English test (grade, duration, essay ratio),\n" +
			"generates placeholder questions from fixed templates, previews them, and\n" +
			"exports a printable PDF. Run without arguments for the interactive UI.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(configPath)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewGenerateCmd(&configPath))
	cmd.AddCommand(NewFontCmd(&configPath))
	return cmd
}
