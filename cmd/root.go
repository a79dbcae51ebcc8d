// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"thumbgrab/internal/config"
	"thumbgrab/internal/history"
	"thumbgrab/internal/httputil"
	"thumbgrab/internal/media"
	"thumbgrab/internal/provider"
	"thumbgrab/internal/ui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagQuality string
	flagOutput  string
	flagJSON    bool
	flagDebug   bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "thumbgrab [url]",
	Short: "Fetch YouTube video thumbnails from the terminal",
	Long: `Thumbgrab resolves a YouTube URL to its thumbnail image at a chosen
quality tier, previews it, and downloads it or copies a shareable link.
Run without arguments for an interactive session, or pass a video URL.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              sessionRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagQuality, "quality", "q", "", "Thumbnail quality: max | sd | hq | mq")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Download directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output resolved thumbnail as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagQuality != "" {
		cfg.Quality = flagQuality
	}
	if flagOutput != "" {
		cfg.DownloadDir = flagOutput
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[thumbgrab] ")
	} else {
		log.SetFlags(0)
	}

	return nil
}

// sessionRun is the default command: an interactive session on a terminal,
// a one-shot resolve otherwise.
func sessionRun(cmd *cobra.Command, args []string) error {
	url := ""
	if len(args) > 0 {
		url = args[0]
	}

	if flagJSON || !stdoutIsTTY() {
		if url == "" {
			return fmt.Errorf("a video URL is required outside the interactive session")
		}
		return resolveOnce(url)
	}

	client := httputil.NewClient()
	store := openHistory()
	if store != nil {
		defer store.Close()
	}

	return ui.Run(cfg, client, newProvider(client), store, url)
}

// versionCmd prints the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the thumbgrab version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("thumbgrab " + Version)
	},
}

func newProvider(client *http.Client) *provider.YouTube {
	return provider.NewYouTube(cfg.ImageHost, cfg.WatchHost(), client)
}

func httpClient() *http.Client {
	return httputil.NewClient()
}

// recordHistory saves an entry if history is enabled; a failing store is
// logged and ignored.
func recordHistory(entry media.HistoryEntry) {
	store := openHistory()
	if store == nil {
		return
	}
	defer store.Close()
	if err := store.Add(entry); err != nil {
		debugf("saving history failed: %v", err)
	}
}

// openHistory opens the history store, or returns nil when history is
// disabled or the store cannot be opened. A broken store never blocks the
// resolution pipeline.
func openHistory() *history.Store {
	if !cfg.History {
		return nil
	}
	store, err := history.OpenDefault()
	if err != nil {
		debugf("history unavailable: %v", err)
		return nil
	}
	return store
}

func stdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}
