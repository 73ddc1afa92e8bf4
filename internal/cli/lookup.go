package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sayedmahmoud266/quran-lookup/internal/corpus"
)

var surahVerses bool

var verseCmd = &cobra.Command{
	Use:   "verse [surah] [ayah]",
	Short: "Print a single verse",
	Long:  `Prints the verse at the given surah and ayah number. Ayah 0 is the Basmala when the surah has one.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runVerse,
}

var surahCmd = &cobra.Command{
	Use:   "surah [number]",
	Short: "Show surah info or its verses",
	Args:  cobra.ExactArgs(1),
	RunE:  runSurah,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus totals",
	RunE:  runStats,
}

func init() {
	surahCmd.Flags().BoolVarP(&surahVerses, "verses", "v", false, "print every verse instead of the summary")
	rootCmd.AddCommand(verseCmd)
	rootCmd.AddCommand(surahCmd)
	rootCmd.AddCommand(statsCmd)
}

func parseIntArg(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, s)
	}
	return n, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printVerse(cmd *cobra.Command, v *corpus.Verse) {
	cmd.Printf("%d:%d  %s\n", v.Surah, v.Ayah, v.Text)
}

func runVerse(cmd *cobra.Command, args []string) error {
	surah, err := parseIntArg("surah", args[0])
	if err != nil {
		return err
	}
	ayah, err := parseIntArg("ayah", args[1])
	if err != nil {
		return err
	}

	svc, err := service()
	if err != nil {
		return err
	}
	v, err := svc.GetVerse(context.Background(), surah, ayah)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, v)
	}
	printVerse(cmd, v)
	return nil
}

func runSurah(cmd *cobra.Command, args []string) error {
	number, err := parseIntArg("surah", args[0])
	if err != nil {
		return err
	}

	svc, err := service()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if surahVerses {
		verses, err := svc.GetSurahVerses(ctx, number)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(cmd, verses)
		}
		for _, v := range verses {
			printVerse(cmd, v)
		}
		return nil
	}

	ch, err := svc.GetSurah(ctx, number)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(cmd, map[string]any{
			"surah_number": ch.Number,
			"verse_count":  ch.VerseCount(),
			"has_basmala":  ch.HasBasmala(),
		})
	}
	cmd.Printf("Surah %d: %d verses", ch.Number, ch.VerseCount())
	if ch.HasBasmala() {
		cmd.Printf(" (with Basmala)")
	}
	cmd.Println()
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	svc, err := service()
	if err != nil {
		return err
	}
	stats := svc.GetStats(context.Background())
	if jsonOut {
		return printJSON(cmd, stats)
	}
	cmd.Printf("Surahs:  %d\n", stats.TotalSurahs)
	cmd.Printf("Verses:  %d\n", stats.TotalVerses)
	cmd.Printf("Ayahs:   %d\n", stats.TotalAyahs)
	cmd.Printf("Source:  %s\n", stats.Source)
	return nil
}
