package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nookclass",
	Short: "Learn English from videos with dual subtitles",
	Long: `NookClass: a terminal English classroom. Load a YouTube link or the demo
video, follow the English and Traditional Chinese subtitles, look up any word
and collect it in Nook's notebook for quizzes.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, launch{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides NOOKCLASS_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides NOOKCLASS_CONFIG env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(transcriptCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
