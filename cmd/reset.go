package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the lookup cache, and with --words the notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		words, _ := cmd.Flags().GetBool("words")

		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		n, err := d.store.LookupCache().Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached lookups\n", n)

		if words {
			n, err := d.store.VocabRepo().Clear(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d saved words\n", n)
		}
		d.logger.WithField("words", words).Info("reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("words", false, "Also delete every saved word")
}
