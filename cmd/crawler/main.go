// Package main provides the edition crawler: it fetches one day's
// newspaper, enumerates its sections and news lists, and writes the
// edition index files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"peoplesdaily/internal/config"
	"peoplesdaily/internal/crawler"
	"peoplesdaily/internal/formatter"
	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/models"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dateArg := flag.String("date", "", "Edition date as YYYYMMDD (default: latest edition)")
	output := flag.String("output", "", "Output directory (overrides config)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg := loadConfig(*configFile)
	if *output != "" {
		cfg.Crawler.OutputDir = *output
	}

	var date *models.EditionDate

	if *dateArg != "" {
		parsed, err := models.ParseEditionDate(*dateArg)
		if err != nil {
			log.Fatalf("❌ Invalid -date: %v\n", err)
		}

		date = &parsed
	}

	lg := logger.New(cfg.Crawler.Logging.Level)
	fetcher := crawler.NewFetcher(cfg.Crawler.Timeout(), lg)
	editionCrawler := crawler.NewEditionCrawler(fetcher, cfg.Crawler.BaseURL, cfg.Crawler.FetchDelay(), lg)

	fmt.Println("📰 人民日报 Edition Crawler")

	if date != nil {
		fmt.Printf("⏳ Crawling edition %s...\n", date.String())
	} else {
		fmt.Println("⏳ Crawling latest edition...")
	}

	sections, used, err := editionCrawler.Crawl(date)
	if err != nil {
		log.Fatalf("❌ Crawl failed: %v\n", err)
	}

	newsCount := 0
	for _, sn := range sections {
		newsCount += len(sn.News)
	}

	fmt.Printf("✅ Edition %s: %d sections, %d news items\n", used.String(), len(sections), newsCount)

	if err := os.MkdirAll(cfg.Crawler.OutputDir, 0755); err != nil {
		log.Fatalf("❌ Could not create output directory: %v\n", err)
	}

	mdPath := filepath.Join(cfg.Crawler.OutputDir, formatter.IndexFileName(used))
	if err := os.WriteFile(mdPath, []byte(formatter.RenderIndexMarkdown(used, sections)), 0644); err != nil {
		log.Fatalf("❌ Failed to write markdown index: %v\n", err)
	}

	fmt.Printf("📝 Saved: %s\n", mdPath)

	htmlPath := filepath.Join(cfg.Crawler.OutputDir, formatter.IndexHTMLFileName(used))
	if err := os.WriteFile(htmlPath, []byte(formatter.RenderIndexHTML(used, sections)), 0644); err != nil {
		log.Fatalf("❌ Failed to write HTML index: %v\n", err)
	}

	fmt.Printf("📝 Saved: %s\n", htmlPath)
	fmt.Println("\n✨ Edition crawl complete!")
}

// loadConfig loads -config when given, probes configs/crawler.yaml,
// and otherwise runs on defaults.
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
	fmt.Println("Usage: ./bin/crawler [OPTIONS]")
	fmt.Println()
	fmt.Println("Fetches one day's edition and writes {YYYYMMDD}.md and {YYYYMMDD}.html")
	fmt.Println("into the output directory.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/crawler                       # latest edition, default config")
	fmt.Println("  ./bin/crawler -date 20250410")
	fmt.Println("  ./bin/crawler -config configs/crawler.yaml -output output")
}
