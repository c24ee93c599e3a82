package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nookclass/internal/quiz"
	"github.com/abhisek/nookclass/internal/screens/notebook"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a vocabulary quiz in the terminal",
	Long: `Answer multiple-choice questions built from the saved words: pick the
Traditional Chinese meaning of each English word. Needs at least 4 words.`,
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

		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			count = d.cfg.Quiz.Questions
		}
		questions, err := quiz.NewGenerator(nil, count).Generate(entries)
		if errors.Is(err, quiz.ErrInsufficientData) {
			fmt.Fprintln(cmd.OutOrStdout(), notebook.NeedWordsMessage)
			return nil
		}
		if err != nil {
			return err
		}

		sum := runQuiz(cmd.InOrStdin(), cmd.OutOrStdout(), questions)
		d.logger.WithField("score", sum.Score).WithField("total", sum.Total).Info("cli quiz completed")
		return nil
	},
}

// runQuiz asks every question on out, reading option numbers from in.
// Closed input ends the quiz early; unanswered questions count as wrong.
func runQuiz(in io.Reader, out io.Writer, questions []quiz.Question) quiz.Summary {
	scanner := bufio.NewScanner(in)
	s := quiz.NewSession()
	s.Start(questions)

	for s.Phase() == quiz.PhaseAwaitingAnswer {
		q, _ := s.Current()
		fmt.Fprintf(out, "── Question %d/%d ──\n", s.Index()+1, s.Total())
		fmt.Fprintf(out, "Translate this: %s\n", q.Target.Word)
		for i, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o.DefinitionZh)
		}

		choice := -1
		for choice < 0 {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return finishQuiz(out, s)
			}
			n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil || n < 1 || n > len(q.Options) {
				fmt.Fprintf(out, "Enter a number from 1 to %d.", len(q.Options))
				continue
			}
			choice = n - 1
		}

		outcome, _ := s.Answer(choice)
		if outcome.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Not quite.\033[0m It means %s\n", q.Target.DefinitionZh)
		}
		fmt.Fprintln(out)
		s.Advance()
	}
	return finishQuiz(out, s)
}

func finishQuiz(out io.Writer, s *quiz.Session) quiz.Summary {
	sum, ok := s.Summary()
	if !ok {
		sum = quiz.Summary{Score: s.Score(), Total: s.Total()}
		if sum.Total > 0 {
			sum.Percent = sum.Score * 100 / sum.Total
		}
	}
	fmt.Fprintf(out, "── Quiz Complete! You scored %d / %d (%d%%) ──\n", sum.Score, sum.Total, sum.Percent)
	return sum
}

func init() {
	quizCmd.Flags().IntP("count", "n", 0, "Number of questions (default from config)")
}
