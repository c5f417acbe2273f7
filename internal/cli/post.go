package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	postFlagValue string
	putFlagValue  string
)

var postCmd = &cobra.Command{
	Use:   "post [<basket>]",
	Short: "Create or replace a basket",
	Long: `Replaces the whole basket with a JSON object.

Reads the object from --value, or from stdin when piped.
Keys not present in the new object are removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPost,
}

var putCmd = &cobra.Command{
	Use:   "put [<basket>]",
	Short: "Merge keys into a basket",
	Long: `Merges the top-level keys of a JSON object into the basket.

Existing keys not mentioned are kept, mentioned keys are overwritten and a
missing basket is created. Nested objects are replaced, not merged.
Reads the object from --value, or from stdin when piped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPut,
}

func init() {
	postCmd.Flags().StringVar(&postFlagValue, "value", "", "Basket contents as a JSON object")
	putCmd.Flags().StringVar(&putFlagValue, "value", "", "Keys to merge as a JSON object")
}

func runPost(cmd *cobra.Command, args []string) error {
	value, err := readValue(cmd, postFlagValue)
	if err != nil {
		return err
	}

	target, err := resolveTarget(args, 0)
	if err != nil {
		return err
	}

	data, err := newClient().Replace(cmd.Context(), target, value)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "Replaced basket %s (%d keys)\n", target.BasketName, len(value))
	}
	return outputPayload(data)
}

func runPut(cmd *cobra.Command, args []string) error {
	value, err := readValue(cmd, putFlagValue)
	if err != nil {
		return err
	}

	target, err := resolveTarget(args, 0)
	if err != nil {
		return err
	}

	data, err := newClient().Merge(cmd.Context(), target, value)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "Merged %d keys into basket %s\n", len(value), target.BasketName)
	}
	return outputPayload(data)
}
