package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/nookclass/internal/video"
)

var playCmd = &cobra.Command{
	Use:   "play [youtube-url]",
	Short: "Open a video straight away",
	Long: `Open the classroom with a video already loading. Without a URL, or with
--demo, the bundled demo video is played.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		demo, _ := cmd.Flags().GetBool("demo")
		if demo || len(args) == 0 {
			return runApp(cmd, launch{Demo: true})
		}
		if _, err := video.ExtractID(args[0]); err != nil {
			return fmt.Errorf("%q: %w", args[0], err)
		}
		return runApp(cmd, launch{URL: args[0]})
	},
}

func init() {
	playCmd.Flags().Bool("demo", false, "Play the demo video")
	playCmd.Flags().String("topic", "", "Topic for generated transcripts")
}
