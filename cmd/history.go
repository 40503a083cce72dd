/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/nyaya/internal/lang"
	"github.com/valpere/nyaya/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past analyses",
	Long: `List, inspect and clear the SQLite history of submitted documents.

History is recorded only when --history-db (or history.db in the config file)
is set.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded analyses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.ListAnalyses(context.Background(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No analyses in history.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLANG\tOUTCOME\tLATENCY\tCREATED\tTEXT")
		for _, e := range entries {
			snippet := []rune(e.RawText)
			text := string(snippet)
			if len(snippet) > 40 {
				text = string(snippet[:37]) + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%s\t%s\n",
				e.ID, e.TargetLang, e.Outcome, e.Latency.Milliseconds(),
				e.Timestamp.Local().Format("2006-01-02 15:04"), text)
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recorded analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		e, err := db.GetAnalysis(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:        %s\n", e.ID)
		fmt.Printf("Created:   %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Language:  %s (%s)\n", lang.Label(e.TargetLang), e.TargetLang)
		fmt.Printf("Outcome:   %s\n", e.Outcome)
		fmt.Printf("Latency:   %dms\n", e.Latency.Milliseconds())
		if e.Error != "" {
			fmt.Printf("Error:     %s\n", e.Error)
		}
		fmt.Printf("\nDocument:\n%s\n", e.RawText)
		if e.Output != "" {
			fmt.Printf("\nOutput:\n%s\n", e.Output)
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Printf("Total entries:   %d\n", stats.TotalEntries)
		fmt.Printf("Rendered:        %d\n", stats.Rendered)
		fmt.Printf("Skipped:         %d\n", stats.Skipped)
		fmt.Printf("Failed:          %d\n", stats.Failed)
		fmt.Printf("Avg latency:     %dms\n", stats.AvgLatencyMs)
		fmt.Printf("Languages:       %d\n", stats.LanguagesCount)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded analysis by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteAnalysis(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		fmt.Printf("Deleted entry: %s\n", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearAnalyses(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Printf("Cleared %d entries from history.\n", n)
		return nil
	},
}

func openHistory() (*store.Store, error) {
	if cfg.History.DB == "" {
		return nil, fmt.Errorf("history is disabled; set --history-db or history.db in the config file")
	}
	return openStore(cfg.History.DB)
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}
