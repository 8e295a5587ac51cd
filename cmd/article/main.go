// Package main provides the article fetcher: it locates the first
// article of the primary section, saves the raw page and a readable
// standalone HTML version.
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
	"peoplesdaily/internal/normalizer"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dateArg := flag.String("date", "", "Edition date as YYYYMMDD (default: today)")
	output := flag.String("output", "", "Output directory (overrides config)")
	fromIndex := flag.Bool("from-index", false, "Locate the article via a previously generated index file instead of the live site")
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

	date := models.Today()

	if *dateArg != "" {
		parsed, err := models.ParseEditionDate(*dateArg)
		if err != nil {
			log.Fatalf("❌ Invalid -date: %v\n", err)
		}

		date = parsed
	}

	lg := logger.New(cfg.Crawler.Logging.Level)
	fetcher := crawler.NewFetcher(cfg.Crawler.Timeout(), lg)
	articleCrawler := crawler.NewArticleCrawler(fetcher, cfg.Crawler.BaseURL, lg)

	fmt.Println("📰 人民日报 Article Fetcher")
	fmt.Printf("⏳ Locating first article of edition %s...\n", date.String())

	articleURL, title, fileDate, err := locateArticle(articleCrawler, cfg, date, *fromIndex)
	if err != nil {
		log.Fatalf("❌ Could not locate article: %v\n", err)
	}

	fmt.Printf("✅ First article: %s\n   %s\n", title, articleURL)

	html, err := articleCrawler.FetchArticle(articleURL)
	if err != nil {
		log.Fatalf("❌ Fetch failed: %v\n", err)
	}

	if err := os.MkdirAll(cfg.Crawler.OutputDir, 0755); err != nil {
		log.Fatalf("❌ Could not create output directory: %v\n", err)
	}

	base := formatter.ArticleFileBase(fileDate)

	rawPath := filepath.Join(cfg.Crawler.OutputDir, base+".html")
	if err := os.WriteFile(rawPath, []byte(html), 0644); err != nil {
		log.Fatalf("❌ Failed to save raw article: %v\n", err)
	}

	fmt.Printf("📝 Saved: %s\n", rawPath)

	article, err := normalizer.New(lg).Parse(html, articleURL)
	if err != nil {
		log.Fatalf("❌ Normalization failed: %v\n", err)
	}

	readablePath := filepath.Join(cfg.Crawler.OutputDir, base+"-readable.html")
	if err := os.WriteFile(readablePath, []byte(formatter.RenderReadableHTML(article)), 0644); err != nil {
		log.Fatalf("❌ Failed to save readable article: %v\n", err)
	}

	fmt.Printf("📝 Saved: %s\n", readablePath)
	fmt.Println("\n✨ Article fetch complete!")
}

// locateArticle resolves the first article URL either from the live
// primary section or from a previously generated index file. Returns
// the URL, the article title and the date whose edition was used.
func locateArticle(c *crawler.ArticleCrawler, cfg *config.Config, date models.EditionDate, fromIndex bool) (string, string, models.EditionDate, error) {
	if fromIndex {
		return c.FirstArticleFromIndex(cfg.Crawler.OutputDir, date)
	}

	sectionURL, sectionHTML, err := c.FetchPrimarySection(date)
	if err != nil {
		return "", "", date, err
	}

	url, title, err := c.FirstArticleURL(sectionHTML, sectionURL)

	return url, title, date, err
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
	fmt.Println("Usage: ./bin/article [OPTIONS]")
	fmt.Println()
	fmt.Println("Fetches the first article of the primary section and writes")
	fmt.Println("{YYYYMMDD}-0101.html and {YYYYMMDD}-0101-readable.html.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/article -date 20250410")
	fmt.Println("  ./bin/article -from-index          # use output/{YYYYMMDD}.md, one-day fallback")
}
