package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFontCmd pre-provisions the font cache so the first export never blocks
// on a download.
func NewFontCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "font",
		Short: "Provision the Unicode font cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(*configPath, "", false)
			if err != nil {
				return err
			}
			defer d.close()

			path, err := d.fonts.Ensure(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "font ready at %s\n", path)
			return nil
		},
	}
}
