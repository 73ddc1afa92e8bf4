// Package cli implements the quran-lookup command line interface.
//
// Commands cover the read side of the API (verse, surah, stats), the four
// search strategies, an interactive REPL, and the HTTP server. The corpus is
// loaded lazily on first use so commands like `version` stay instant.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sayedmahmoud266/quran-lookup/internal/config"
	"github.com/sayedmahmoud266/quran-lookup/internal/loader"
	"github.com/sayedmahmoud266/quran-lookup/internal/search"
	"github.com/sayedmahmoud266/quran-lookup/internal/services"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	dataPath string
	jsonOut  bool
)

var (
	loadedCfg *config.Config
	loadedSvc *services.QuranService
)

var rootCmd = &cobra.Command{
	Use:   "quran-lookup",
	Short: "Quran ayah lookup and fuzzy search",
	Long: `Look up Quran verses by reference and search the text with exact,
fuzzy, and sliding-window matching. The corpus is read from a Tanzil
"surah|ayah|text" file; the Basmala is split into ayah 0 on load.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "path to the Tanzil text file (overrides DATA_PATH)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output results as JSON")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the environment once per process.
func loadConfig() (config.Config, error) {
	if loadedCfg != nil {
		return *loadedCfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	loadedCfg = &cfg
	return cfg, nil
}

// service loads the corpus on first use and memoizes the result.
func service() (*services.QuranService, error) {
	if loadedSvc != nil {
		return loadedSvc, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := dataPath
	if path == "" {
		path = cfg.DataPath
	}
	c, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load corpus from %s: %w", path, err)
	}
	loadedSvc = &services.QuranService{Corpus: c, MaxQueryRunes: cfg.MaxQueryRunes}
	return loadedSvc, nil
}

// resetState clears memoized config, corpus, and flag values. Used by tests
// that switch data files between runs.
func resetState() {
	loadedCfg = nil
	loadedSvc = nil
	dataPath = ""
	jsonOut = false
	surahVerses = false
	searchLimit = 0
	searchNormalized = true
	fuzzyThreshold = search.DefaultFuzzyThreshold
	slidingThreshold = search.DefaultSlidingThreshold
}
