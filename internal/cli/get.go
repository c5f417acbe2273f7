package cli

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [<basket>]",
	Short: "Print the contents of a basket",
	Long: `Fetches a basket and prints its contents.

The basket argument is optional and falls back to --basket-name or BASKET_NAME.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(args, 0)
	if err != nil {
		return err
	}

	data, err := newClient().Get(cmd.Context(), target)
	if err != nil {
		return err
	}

	return outputPayload(data)
}
