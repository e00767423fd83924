package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ytget/reel/internal/effects"
)

func newEffectsCmd(app *App) *cobra.Command {
	var filtersOnly bool

	cmd := &cobra.Command{
		Use:   "effects",
		Short: "List the available effects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := effects.All()
			if filtersOnly {
				list = effects.Filters()
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderEffects(list))
			return nil
		},
	}

	cmd.Flags().BoolVar(&filtersOnly, "filters", false, "Only the filters offered for images and shapes")
	return cmd
}
