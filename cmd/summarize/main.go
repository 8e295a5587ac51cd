// Package main provides the AI summarizer: it picks one of the day's
// converted articles and writes a structured summary of it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"peoplesdaily/internal/config"
	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/summarize"

	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dir := flag.String("dir", "", "Directory holding converted articles (overrides config)")
	mock := flag.Bool("mock", false, "Use the deterministic mock summarizer (no API call)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	// .env is optional; the environment itself may carry the key.
	_ = godotenv.Load()

	cfg := loadConfig(*configFile)
	if *dir != "" {
		cfg.Crawler.OutputDir = *dir
	}

	if *mock {
		cfg.Summarize.Mock = true
	}

	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" && !cfg.Summarize.Mock {
		fmt.Println("⚠️  DEEPSEEK_API_KEY not set, falling back to mock mode")

		cfg.Summarize.Mock = true
	}

	lg := logger.New(cfg.Crawler.Logging.Level)

	fmt.Println("🤖 人民日报 AI Summarizer")

	finder := summarize.NewFinder(cfg.Crawler.OutputDir, lg)

	candidates, used, err := finder.FindCandidates()
	if err != nil {
		if errors.Is(err, summarize.ErrNoSummarizableFiles) {
			log.Fatalf("❌ Nothing to summarize: %v\n", err)
		}

		log.Fatalf("❌ Discovery failed: %v\n", err)
	}

	picked := summarize.PickRandom(candidates)
	fmt.Printf("✅ Found %d article(s) for %s, picked: %s\n", len(candidates), used.String(), picked)

	doc, err := summarize.LoadSource(filepath.Join(cfg.Crawler.OutputDir, picked))
	if err != nil {
		log.Fatalf("❌ Failed to load article: %v\n", err)
	}

	summarizer, err := summarize.New(cfg.Summarize, apiKey, lg)
	if err != nil {
		log.Fatalf("❌ Summarizer setup failed: %v\n", err)
	}

	fmt.Printf("⏳ Summarizing %q (mock: %v)...\n", doc.Title(), cfg.Summarize.Mock)

	result, err := summarizer.Summarize(context.Background(), doc)
	if err != nil {
		log.Fatalf("❌ Summarization failed: %v\n", err)
	}

	path, err := summarize.WriteSummary(result)
	if err != nil {
		log.Fatalf("❌ Failed to write summary: %v\n", err)
	}

	fmt.Printf("📝 Saved: %s\n", path)
	fmt.Printf("\n📈 Accounting:\n")
	fmt.Printf("  Input tokens:   %d\n", result.InputTokens)
	fmt.Printf("  Output chars:   %d\n", result.OutputChars)
	fmt.Printf("  Estimated cost: $%.6f\n", result.EstimatedCostUSD)

	fmt.Println("\n✨ Summarization complete!")
}

func loadConfig(configFile string) *config.Config {
	if configFile != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", configFile)

		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			log.Fatalf("❌ Failed to load config: %v\n", err)
		}

		return cfg
	}

	defaultConfig := "configs/crawler.yaml"
	if _, err := os.Stat(defaultConfig); err == nil {
		fmt.Printf("⚙️  Loading default configuration: %s\n", defaultConfig)

		cfg, err := config.LoadConfig(defaultConfig)
		if err != nil {
			log.Fatalf("❌ Failed to load default config: %v\n", err)
		}

		return cfg
	}

	fmt.Println("⚙️  Using built-in defaults")

	return config.Default()
}

func printUsage() {
	fmt.Println("Usage: ./bin/summarize [OPTIONS]")
	fmt.Println()
	fmt.Println("Picks one of today's converted articles (falling back to yesterday)")
	fmt.Println("and writes {base}-ai-summarize.md next to it.")
	fmt.Println()
	fmt.Println("The DeepSeek API key comes from DEEPSEEK_API_KEY (or a .env file).")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/summarize -dir output")
	fmt.Println("  ./bin/summarize -mock")
}
