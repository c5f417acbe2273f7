package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	deleteFlagForce bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [<basket>]",
	Short: "Delete a basket",
	Long: `Deletes a basket from the pantry.

Asks for confirmation when stdin is a terminal; use --force to skip the
prompt or when running non-interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteFlagForce, "force", "f", false, "Delete without confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(args, 0)
	if err != nil {
		return err
	}

	if !deleteFlagForce && !confirmPrompt(fmt.Sprintf("Delete basket %q?", target.BasketName)) {
		return fmt.Errorf("deletion not confirmed; use --force to delete without a prompt")
	}

	data, err := newClient().Delete(cmd.Context(), target)
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "Deleted: %s\n", target.BasketName)
	}
	return outputPayload(data)
}
