package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nookclass/internal/vocab"
)

var wordsCmd = &cobra.Command{
	Use:     "words",
	Aliases: []string{"notebook"},
	Short:   "Manage the saved words in Nook's notebook",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved words",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		entries, err := d.store.VocabRepo().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No words collected yet!")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Collection (%d)\n", len(entries))
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, e := range entries {
			fmt.Fprintf(out, "%-18s  %-10s  %s\n", e.Word, e.PartOfSpeech, e.DefinitionZh)
		}
		return nil
	},
}

var wordsRemoveCmd = &cobra.Command{
	Use:   "remove <word>...",
	Short: "Remove words from the notebook",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		repo := d.store.VocabRepo()
		for _, w := range args {
			removed, err := repo.Remove(cmd.Context(), w)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", w)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%q is not in the notebook\n", w)
			}
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the notebook as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		entries, err := d.store.VocabRepo().List(cmd.Context())
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("out")
		if path == "-" {
			return vocab.NewStore(entries...).Export(cmd.OutOrStdout())
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := vocab.NewStore(entries...).Export(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s\n", len(entries), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Merge an exported notebook into this one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		st, err := d.vocabulary(ctx)
		if err != nil {
			return err
		}
		added, err := st.ImportWords(ctx, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new words (%d total)\n", added, st.CollectionSize())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", vocab.ExportFilename, "Output file, or - for stdout")

	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsRemoveCmd)
}
