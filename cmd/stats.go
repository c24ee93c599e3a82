package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show notebook statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		entries, err := d.store.VocabRepo().List(ctx)
		if err != nil {
			return err
		}
		cached, err := d.store.LookupCache().Count(ctx)
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), entries, cached)
		return nil
	},
}

func printStats(out io.Writer, entries []vocab.Entry, cached int) {
	fmt.Fprintf(out, "Words saved:      %d\n", len(entries))
	fmt.Fprintf(out, "Lookups cached:   %d\n", cached)
	if len(entries) < quiz.MinEntries {
		fmt.Fprintf(out, "Quiz:             save %d more to unlock\n", quiz.MinEntries-len(entries))
	} else {
		fmt.Fprintln(out, "Quiz:             ready")
	}
	if len(entries) == 0 {
		return
	}

	byPOS := lo.CountValuesBy(entries, func(e vocab.Entry) string { return e.PartOfSpeech })
	kinds := lo.Keys(byPOS)
	slices.SortFunc(kinds, func(a, b string) int {
		if byPOS[a] != byPOS[b] {
			return byPOS[b] - byPOS[a]
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})

	fmt.Fprintln(out, "\nBy part of speech")
	for _, k := range kinds {
		fmt.Fprintf(out, "  %-14s  %d\n", k, byPOS[k])
	}
}
