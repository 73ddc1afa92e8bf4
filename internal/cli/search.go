package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
	"github.com/sayedmahmoud266/quran-lookup/internal/search"
)

var (
	searchLimit      int
	searchNormalized bool
	fuzzyThreshold   float64
	slidingThreshold float64
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Exact substring search",
	Long:  `Returns verses containing the query as a literal substring, in canonical order.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var fuzzyCmd = &cobra.Command{
	Use:   "fuzzy [query]",
	Short: "Fuzzy search within single verses",
	Long: `Scores word windows of each verse against the query and returns matches
at or above the threshold, best first. Scores are in [0,1].`,
	Args: cobra.ExactArgs(1),
	RunE: runFuzzy,
}

var slidingCmd = &cobra.Command{
	Use:   "sliding [query]",
	Short: "Sliding-window search across verse boundaries",
	Long: `Scans a flattened word stream of the whole corpus so matches may span
multiple verses. Scores are in [0,100].`,
	Args: cobra.ExactArgs(1),
	RunE: runSliding,
}

var smartCmd = &cobra.Command{
	Use:   "smart [query]",
	Short: "Cascading search (exact, then fuzzy, then sliding window)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSmart,
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, fuzzyCmd, slidingCmd, smartCmd} {
		c.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = unlimited)")
		c.Flags().BoolVar(&searchNormalized, "normalized", true, "search the normalized text")
	}
	fuzzyCmd.Flags().Float64VarP(&fuzzyThreshold, "threshold", "t", search.DefaultFuzzyThreshold, "minimum similarity in [0,1]")
	slidingCmd.Flags().Float64VarP(&slidingThreshold, "threshold", "t", search.DefaultSlidingThreshold, "minimum similarity in [0,100]")
	smartCmd.Flags().Float64Var(&fuzzyThreshold, "threshold", search.DefaultFuzzyThreshold, "fuzzy similarity floor in [0,1]")
	smartCmd.Flags().Float64Var(&slidingThreshold, "sliding-threshold", search.DefaultSlidingThreshold, "sliding-window similarity floor in [0,100]")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(fuzzyCmd)
	rootCmd.AddCommand(slidingCmd)
	rootCmd.AddCommand(smartCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := service()
	if err != nil {
		return err
	}
	verses, err := svc.SearchExact(context.Background(), args[0], searchNormalized)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchLimit > 0 && len(verses) > searchLimit {
		verses = verses[:searchLimit]
	}
	if jsonOut {
		return printJSON(cmd, verses)
	}
	printVerses(cmd, verses)
	return nil
}

func runFuzzy(cmd *cobra.Command, args []string) error {
	svc, err := service()
	if err != nil {
		return err
	}
	matches, err := svc.SearchFuzzy(context.Background(), args[0], fuzzyThreshold, searchNormalized, searchLimit)
	if err != nil {
		return fmt.Errorf("fuzzy search failed: %w", err)
	}
	if jsonOut {
		return printJSON(cmd, matches)
	}
	if len(matches) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for i, m := range matches {
		cmd.Printf("  [%d] %d:%d (%.3f)\n", i+1, m.Verse.Surah, m.Verse.Ayah, m.Similarity)
		cmd.Printf("      %s\n", m.MatchedText)
	}
	return nil
}

func runSliding(cmd *cobra.Command, args []string) error {
	svc, err := service()
	if err != nil {
		return err
	}
	matches, err := svc.SearchSlidingWindow(context.Background(), args[0], slidingThreshold, searchNormalized, searchLimit)
	if err != nil {
		return fmt.Errorf("sliding search failed: %w", err)
	}
	if jsonOut {
		return printJSON(cmd, matches)
	}
	printSlidingMatches(cmd, matches)
	return nil
}

func runSmart(cmd *cobra.Command, args []string) error {
	svc, err := service()
	if err != nil {
		return err
	}
	out, err := svc.SmartSearch(context.Background(), args[0], fuzzyThreshold, slidingThreshold, searchNormalized, searchLimit)
	if err != nil {
		return fmt.Errorf("smart search failed: %w", err)
	}
	if jsonOut {
		return printJSON(cmd, out)
	}
	printSmart(cmd, out)
	return nil
}

func printSmart(cmd *cobra.Command, out search.SmartResult) {
	cmd.Printf("Method: %s (%d results)\n", out.Method, out.Count)
	switch results := out.Results.(type) {
	case []*corpus.Verse:
		printVerses(cmd, results)
	case []search.FuzzyMatch:
		for i, m := range results {
			cmd.Printf("  [%d] %d:%d (%.3f) %s\n", i+1, m.Verse.Surah, m.Verse.Ayah, m.Similarity, m.MatchedText)
		}
	case []search.MultiAyahMatch:
		printSlidingMatches(cmd, results)
	}
}

func printVerses(cmd *cobra.Command, verses []*corpus.Verse) {
	if len(verses) == 0 {
		cmd.Println("No results found.")
		return
	}
	for _, v := range verses {
		printVerse(cmd, v)
	}
}

func printSlidingMatches(cmd *cobra.Command, matches []search.MultiAyahMatch) {
	if len(matches) == 0 {
		cmd.Println("No results found.")
		return
	}
	for i, m := range matches {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, m.Reference(), m.Similarity)
		cmd.Printf("      %s\n", strings.TrimSpace(m.MatchedText))
	}
}
