package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/nookclass/internal/screen"
	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/vocab"
)

// maxParallelLookups bounds concurrent dictionary requests.
const maxParallelLookups = 4

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>...",
	Short: "Look up words in the dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sentence, _ := cmd.Flags().GetString("sentence")
		save, _ := cmd.Flags().GetBool("save")

		entries, err := lookupAll(ctx, d.lookupService(), args, sentence)
		if err != nil {
			return err
		}

		repo := d.store.VocabRepo()
		for _, e := range entries {
			printEntry(cmd.OutOrStdout(), e)
			if !save || e.IsFailed() {
				continue
			}
			added, err := repo.Add(ctx, e)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ saved %q to notebook\n\n", e.Word)
			}
		}
		return nil
	},
}

// lookupAll resolves words concurrently, keeping the input order. Words
// are cleaned of punctuation first; empty results are skipped.
func lookupAll(ctx context.Context, svc screen.Lookuper, words []string, sentence string) ([]vocab.Entry, error) {
	words = cleanWords(words)
	out := make([]vocab.Entry, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLookups)
	for i, w := range words {
		g.Go(func() error {
			out[i] = svc.Lookup(gctx, w, sentence)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func cleanWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if c := transcript.CleanWord(strings.TrimSpace(w)); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func printEntry(w io.Writer, e vocab.Entry) {
	head := e.Word
	if e.IPA != "" {
		head += "  " + e.IPA
	}
	fmt.Fprintf(w, "%s  (%s)\n", head, e.PartOfSpeech)
	fmt.Fprintf(w, "  %s\n", e.DefinitionEn)
	fmt.Fprintf(w, "  %s\n", e.DefinitionZh)
	if e.ExampleEn != "" {
		fmt.Fprintf(w, "  “%s”\n", e.ExampleEn)
		fmt.Fprintf(w, "  %s\n", e.ExampleZh)
	}
	fmt.Fprintln(w)
}

func init() {
	lookupCmd.Flags().String("sentence", "", "Sentence the word appeared in (logged with the lookup)")
	lookupCmd.Flags().Bool("save", false, "Save successful lookups to the notebook")
}
