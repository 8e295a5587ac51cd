package summarize

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"sort"
	"strings"

	"peoplesdaily/internal/logger"
	"peoplesdaily/internal/models"
)

// ErrNoSummarizableFiles is returned when neither today's nor
// yesterday's converted articles exist.
var ErrNoSummarizableFiles = errors.New("no summarizable article files found")

// summarizableNamePattern matches converted article files
// ({YYYYMMDD}-{NNNN}.md) and nothing else, in particular not the
// edition index or previously written summaries.
var summarizableNamePattern = regexp.MustCompile(`^\d{8}-\d{4}\.md$`)

// Finder locates converted article files eligible for summarization.
type Finder struct {
	dir    string
	logger *logger.Logger
}

// NewFinder creates a finder over dir.
func NewFinder(dir string, log *logger.Logger) *Finder {
	return &Finder{dir: dir, logger: log}
}

// FindCandidates returns today's converted article files, falling back
// to yesterday's exactly once when today has none. The returned date
// is the day whose files were used.
func (f *Finder) FindCandidates() ([]string, models.EditionDate, error) {
	today := models.Today()

	files, err := f.findForDate(today)
	if err != nil {
		return nil, today, err
	}

	if len(files) > 0 {
		return files, today, nil
	}

	prev := today.Prev()
	f.logger.Warn("no article files for today, falling back to yesterday",
		"today", today.String(), "yesterday", prev.String())

	files, err = f.findForDate(prev)
	if err != nil {
		return nil, prev, err
	}

	if len(files) == 0 {
		return nil, prev, fmt.Errorf("%w in %s for %s or %s",
			ErrNoSummarizableFiles, f.dir, today, prev)
	}

	return files, prev, nil
}

func (f *Finder) findForDate(date models.EditionDate) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if summarizableNamePattern.MatchString(name) && strings.HasPrefix(name, date.String()) {
			files = append(files, name)
		}
	}

	sort.Strings(files)

	return files, nil
}

// PickRandom selects one candidate uniformly at random.
func PickRandom(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	return candidates[rand.Intn(len(candidates))]
}
