package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/nookclass/internal/app"
	"github.com/abhisek/nookclass/internal/quiz"
)

// launch selects what the TUI opens on.
type launch struct {
	URL  string
	Demo bool
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, l launch) error {
	ctx := cmd.Context()
	d, err := loadDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	state, err := d.vocabulary(ctx)
	if err != nil {
		return err
	}

	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		topic = d.cfg.Player.Topic
	}

	opts := app.Options{
		State:         state,
		Source:        d.transcriptSource(ctx),
		Lookup:        d.lookupService(),
		Quiz:          quiz.NewGenerator(nil, d.cfg.Quiz.Questions),
		PollInterval:  d.cfg.Player.PollInterval,
		FeedbackDelay: d.cfg.Quiz.FeedbackDelay,
		Topic:         topic,
		StartURL:      l.URL,
		StartDemo:     l.Demo,
		Logger:        d.logger,
	}

	d.logger.WithField("words", state.CollectionSize()).Info("starting nookclass")
	return app.Run(ctx, opts)
}

func init() {
	rootCmd.Flags().String("topic", "", "Topic for generated transcripts")
}
