package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive search prompt",
	Long: `Reads queries from standard input and runs the cascading search on each.
Type "exit" or press Ctrl-D to leave.`,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().Float64Var(&fuzzyThreshold, "threshold", fuzzyThreshold, "fuzzy similarity floor in [0,1]")
	replCmd.Flags().Float64Var(&slidingThreshold, "sliding-threshold", slidingThreshold, "sliding-window similarity floor in [0,100]")
	replCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, _ []string) error {
	svc, err := service()
	if err != nil {
		return err
	}

	stats := svc.GetStats(context.Background())
	cmd.Printf("Loaded %d surahs, %d verses. Type a query, or \"exit\" to quit.\n",
		stats.TotalSurahs, stats.TotalVerses)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			break
		}
		query := strings.TrimSpace(scanner.Text())
		switch query {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		out, err := svc.SmartSearch(context.Background(), query, fuzzyThreshold, slidingThreshold, true, searchLimit)
		if err != nil {
			cmd.PrintErrf("error: %v\n", err)
			continue
		}
		printSmart(cmd, out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
