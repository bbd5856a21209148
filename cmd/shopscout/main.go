package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/storage"
	"github.com/arjunmehra/shopscout/pkg/shopscout"
)

var (
	cfgFile    string
	verbose    bool
	outputPath string
	outputType string
	useBrowser bool
	backendURL string
	userAgent  string
	maxItems   int
	noStore    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shopscout",
		Short: "ShopScout — shopping-page product extraction and Q&A",
		Long: `ShopScout reads a product listing page, extracts and ranks the real
products on it, and answers natural-language questions about them.

Features:
  • Site-aware CSS/XPath selector tables for Amazon, Flipkart, IMDB, Goodreads
  • Generic selector fallback for unrecognized shops
  • Candidate validation and product-likeness scoring
  • Headless-browser page loading for client-rendered listings
  • Price/rating filters parsed from the question itself
  • JSON, JSONL, CSV and MongoDB result archiving`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [url]",
		Short: "Extract products from a listing page",
		Long:  "Load the given page, extract and rank its products, and archive the result.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScrape,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "./output", "output directory")
	cmd.Flags().StringVarP(&outputType, "format", "f", "json", "output format: json, jsonl, csv, mongodb")
	cmd.Flags().BoolVar(&useBrowser, "live", false, "render the page in a headless browser")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "custom User-Agent string")
	cmd.Flags().IntVarP(&maxItems, "max-items", "m", 0, "cap extracted products (0 = config default)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "print the result without archiving it")

	return cmd
}

// runScrape executes the scrape command.
func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyCLIOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.ValidateURL(args[0]); err != nil {
		return fmt.Errorf("invalid URL %q: %w", args[0], err)
	}

	assistant := shopscout.NewWithConfig(cfg, logger)
	defer assistant.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	result, err := assistant.ScrapeURL(ctx, args[0])
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	if !noStore {
		store, err := storage.New(cfg.Storage, logger)
		if err != nil {
			return fmt.Errorf("create storage: %w", err)
		}
		if err := store.Store(result); err != nil {
			return fmt.Errorf("store result: %w", err)
		}
		if err := store.Close(); err != nil {
			return fmt.Errorf("close storage: %w", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n✅ Scrape complete in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "   Site:      %s (%s page)\n", result.Site.Name, result.Page.Type)
	fmt.Fprintf(os.Stderr, "   Products:  %d\n", len(result.Items))
	if !noStore {
		fmt.Fprintf(os.Stderr, "   Output:    %s (%s)\n", cfg.Storage.OutputPath, cfg.Storage.Type)
	}
	return nil
}

// askCmd creates the "ask" subcommand.
func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [url] [question]",
		Short: "Ask a question about a listing page",
		Long:  "Scrape the page, then answer the question about its products.",
		Args:  cobra.ExactArgs(2),
		RunE:  runAsk,
	}

	cmd.Flags().BoolVar(&useBrowser, "live", false, "render the page in a headless browser")
	cmd.Flags().StringVar(&backendURL, "backend", "", "answer service URL override")

	return cmd
}

// runAsk executes the ask command.
func runAsk(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyCLIOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	assistant := shopscout.NewWithConfig(cfg, logger)
	defer assistant.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := assistant.ScrapeURL(ctx, args[0])
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	answer, err := assistant.Ask(ctx, args[1], result)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	fmt.Println(answer)
	return nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ShopScout %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Scraper:\n")
			fmt.Printf("  Max Items:          %d\n", cfg.Scraper.MaxItems)
			fmt.Printf("  Max Name Length:    %d\n", cfg.Scraper.MaxNameLength)
			fmt.Printf("  Dedup Prefix:       %d\n", cfg.Scraper.DedupPrefixLength)
			fmt.Printf("  Min Score:          %d\n", cfg.Scraper.MinScore)
			fmt.Printf("\nValidator:\n")
			fmt.Printf("  Title Length:       %d-%d\n", cfg.Validator.MinTitleLength, cfg.Validator.MaxTitleLength)
			fmt.Printf("  Min Price:          %.0f\n", cfg.Validator.MinPrice)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Timeout:            %s\n", cfg.Fetcher.Timeout)
			fmt.Printf("  Follow Redirects:   %v\n", cfg.Fetcher.FollowRedirects)
			fmt.Printf("  Max Body Size:      %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Enabled:            %v\n", cfg.Browser.Enabled)
			fmt.Printf("  Headless:           %v\n", cfg.Browser.Headless)
			fmt.Printf("  Stealth:            %v\n", cfg.Browser.Stealth)
			fmt.Printf("\nBackend:\n")
			fmt.Printf("  URL:                %s\n", cfg.Backend.URL)
			fmt.Printf("  Timeout:            %s\n", cfg.Backend.Timeout)
			fmt.Printf("\nCache:\n")
			fmt.Printf("  TTL:                %s\n", cfg.Cache.TTL)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:               %s\n", cfg.Storage.Type)
			fmt.Printf("  Output Path:        %s\n", cfg.Storage.OutputPath)
			return nil
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if useBrowser {
		cfg.Browser.Enabled = true
	}
	if backendURL != "" {
		cfg.Backend.URL = backendURL
	}
	if userAgent != "" {
		cfg.Fetcher.UserAgent = userAgent
	}
	if maxItems > 0 {
		cfg.Scraper.MaxItems = maxItems
	}
	if outputPath != "" {
		cfg.Storage.OutputPath = outputPath
	}
	if outputType != "" {
		cfg.Storage.Type = strings.ToLower(outputType)
	}
}
