// Package main provides the converter: it normalizes saved article
// HTML files into markdown and JSON records.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"peoplesdaily/internal/config"
	"peoplesdaily/internal/formatter"
	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/models"
	"peoplesdaily/internal/normalizer"
)

// batchNamePattern matches saved article pages eligible for batch
// conversion, excluding readable variants and other outputs.
var batchNamePattern = regexp.MustCompile(`^\d{8}-\d{4}\.html$`)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	file := flag.String("file", "", "Single article HTML file to convert")
	dir := flag.String("dir", "", "Convert every saved article in this directory")
	format := flag.String("format", "all", "Output format: markdown, json or all")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	if *format != "markdown" && *format != "json" && *format != "all" {
		log.Fatalf("❌ Invalid -format %q: expected markdown, json or all\n", *format)
	}

	cfg := loadConfig(*configFile)
	lg := logger.New(cfg.Crawler.Logging.Level)
	n := normalizer.New(lg)

	fmt.Println("📰 人民日报 Article Converter")

	switch {
	case *file != "":
		if err := convertFile(n, *file, *format); err != nil {
			log.Fatalf("❌ Conversion failed: %v\n", err)
		}

	case *dir != "":
		converted, failed := convertDirectory(n, *dir, *format)

		fmt.Printf("\n📈 Batch result: %d converted, %d failed\n", converted, failed)

		if converted == 0 {
			log.Fatal("❌ No articles converted\n")
		}

	default:
		log.Fatal("❌ Please provide -file or -dir\n")
	}

	fmt.Println("\n✨ Conversion complete!")
}

// convertDirectory converts every saved article page in dir, tolerating
// per-file failures.
func convertDirectory(n *normalizer.Normalizer, dir, format string) (int, int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("❌ Could not read directory: %v\n", err)
	}

	converted := 0
	failed := 0

	for _, entry := range entries {
		if entry.IsDir() || !batchNamePattern.MatchString(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		if err := convertFile(n, path, format); err != nil {
			fmt.Printf("⚠️  Skipping %s: %v\n", entry.Name(), err)
			failed++

			continue
		}

		converted++
	}

	return converted, failed
}

func convertFile(n *normalizer.Normalizer, path, format string) error {
	fmt.Printf("\n⏳ Converting: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read article file: %w", err)
	}

	article, err := n.Parse(string(data), "")
	if err != nil {
		return err
	}

	article.FileDate = fileDate(path)

	base := strings.TrimSuffix(path, filepath.Ext(path))

	if format == "markdown" || format == "all" {
		mdPath := base + ".md"
		if err := os.WriteFile(mdPath, []byte(formatter.RenderArticleMarkdown(article)), 0644); err != nil {
			return fmt.Errorf("failed to write markdown: %w", err)
		}

		fmt.Printf("📝 Saved: %s\n", mdPath)
	}

	if format == "json" || format == "all" {
		jsonContent, err := formatter.RenderArticleJSON(article)
		if err != nil {
			return err
		}

		jsonPath := base + ".json"
		if err := os.WriteFile(jsonPath, []byte(jsonContent), 0644); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}

		fmt.Printf("📝 Saved: %s\n", jsonPath)
	}

	fmt.Printf("✅ %s\n   %s\n", article.Title, formatter.ArticleSummary(article, formatter.SummaryLimit))

	return nil
}

// fileDate extracts the YYYYMMDD prefix of the file name, when present.
func fileDate(path string) string {
	name := filepath.Base(path)
	if len(name) >= 8 {
		if _, err := models.ParseEditionDate(name[:8]); err == nil {
			return name[:8]
		}
	}

	return ""
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
	fmt.Println("Usage: ./bin/converter [OPTIONS]")
	fmt.Println()
	fmt.Println("Normalizes saved article HTML into {base}.md and {base}.json.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/converter -file output/20250410-0101.html")
	fmt.Println("  ./bin/converter -dir output -format json")
}
