package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nookclass/internal/llm"
	"github.com/abhisek/nookclass/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the transcript generator and its request log",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which LLM provider transcripts would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		cfg, ok := llm.Resolve(d.cfg.LLM)
		if !ok {
			fmt.Fprintln(out, "No LLM provider configured; transcripts use the preset sentences.")
			fmt.Fprintln(out, "Set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY to enable one.")
			return nil
		}
		fmt.Fprintf(out, "Provider:  %s\n", cfg.Provider)
		fmt.Fprintf(out, "Model:     %s\n", cfg.Model)
		if cfg.BaseURL != "" {
			fmt.Fprintf(out, "Base URL:  %s\n", cfg.BaseURL)
		}
		fmt.Fprintf(out, "Attempts:  %d\n", cfg.Retry.MaxAttempts)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(out, "Problem:   %v\n", err)
		}
		return nil
	},
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		reqs, err := d.store.LLMRequestRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}
		printRequests(cmd.OutOrStdout(), reqs)
		return nil
	},
}

func printRequests(out io.Writer, reqs []store.LLMRequest) {
	if len(reqs) == 0 {
		fmt.Fprintln(out, "No LLM requests found.")
		return
	}

	fmt.Fprintf(out, "%-19s  %-11s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"Timestamp", "Provider", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(out, strings.Repeat("─", 100))

	for _, r := range reqs {
		ok := "✓"
		if !r.Success {
			ok = "✗ " + truncate(r.ErrorMessage, 40)
		}
		fmt.Fprintf(out, "%-19s  %-11s  %-28s  %-6d  %-6d  %-7d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Provider,
			truncate(r.Model, 28),
			r.InputTokens,
			r.OutputTokens,
			r.LatencyMs,
			ok,
		)
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		usage, err := d.store.LLMRequestRepo().Usage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		printUsage(cmd.OutOrStdout(), usage)
		return nil
	},
}

func printUsage(out io.Writer, usage []store.LLMUsage) {
	if len(usage) == 0 {
		fmt.Fprintln(out, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintln(out, "Estimated Cost (USD)")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %9s\n",
		"Model", "Calls", "Failed", "Input", "Output", "Cost")
	fmt.Fprintln(out, strings.Repeat("─", 80))

	var totalCost float64
	var unknownModels []string
	for _, u := range usage {
		cost := llm.LookupCost(u.Model)
		if cost == nil {
			unknownModels = append(unknownModels, u.Model)
			fmt.Fprintf(out, "%-32s  %6d  %6d  %10d  %10d  %9s\n",
				truncate(u.Model, 32), u.Requests, u.Failures, u.InputTokens, u.OutputTokens, "?")
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		totalCost += c
		fmt.Fprintf(out, "%-32s  %6d  %6d  %10d  %10d  %9s\n",
			truncate(u.Model, 32), u.Requests, u.Failures, u.InputTokens, u.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(out, strings.Repeat("─", 80))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %9s\n", label, "", "", "", "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")

	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
