package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/nookclass/internal/transcript"
	"github.com/abhisek/nookclass/internal/video"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript [youtube-url]",
	Short: "Print the dual-language transcript for a video",
	Long: `Print the transcript the player would show. Without a URL the demo video's
transcript is printed. Other videos get a generated transcript on --topic.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		id := transcript.DemoVideoID
		if len(args) == 1 {
			if id, err = video.ExtractID(args[0]); err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}
		}
		topic, _ := cmd.Flags().GetString("topic")
		if topic == "" {
			topic = d.cfg.Player.Topic
		}

		lines, err := d.transcriptSource(ctx).Transcript(ctx, id, topic)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		meta := video.NewMeta(id, "")
		fmt.Fprintf(out, "%s  %s\n\n", meta.ID, meta.Thumbnail)
		for _, l := range lines {
			fmt.Fprintf(out, "[%s → %s]  %s\n", formatSeconds(l.StartTime), formatSeconds(l.EndTime), l.TextEn)
			fmt.Fprintf(out, "                 %s\n", l.TextZh)
		}
		return nil
	},
}

func formatSeconds(sec float64) string {
	s := int(sec)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func init() {
	transcriptCmd.Flags().String("topic", "", "Topic for a generated transcript")
}
