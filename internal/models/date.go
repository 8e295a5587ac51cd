package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidDate is returned when a date string is not of the form YYYYMMDD.
var ErrInvalidDate = errors.New("invalid date: expected YYYYMMDD")

// beijing is the newspaper's publication timezone. Edition URLs, file
// names and timestamps are all derived from Beijing time.
var beijing = loadBeijing()

func loadBeijing() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		// No tzdata available; Asia/Shanghai has no DST.
		return time.FixedZone("CST", 8*60*60)
	}

	return loc
}

// Now returns the current time in the publication timezone.
func Now() time.Time {
	return time.Now().In(beijing)
}

// EditionDate identifies one day's newspaper issue.
type EditionDate struct {
	Year  int
	Month int
	Day   int
}

// Today returns the edition date for the current Beijing day.
func Today() EditionDate {
	now := Now()

	return EditionDate{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// ParseEditionDate parses a YYYYMMDD string into an EditionDate.
func ParseEditionDate(s string) (EditionDate, error) {
	if len(s) != 8 {
		return EditionDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return EditionDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	month, err := strconv.Atoi(s[4:6])
	if err != nil || month < 1 || month > 12 {
		return EditionDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	day, err := strconv.Atoi(s[6:8])
	if err != nil || day < 1 || day > 31 {
		return EditionDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return EditionDate{Year: year, Month: month, Day: day}, nil
}

// String returns the canonical YYYYMMDD form.
func (d EditionDate) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// Display returns the Chinese display form, e.g. 2025年04月10日.
func (d EditionDate) Display() string {
	return fmt.Sprintf("%04d年%02d月%02d日", d.Year, d.Month, d.Day)
}

// NodeURL builds the URL of section page n for this edition.
func (d EditionDate) NodeURL(baseURL string, n int) string {
	return fmt.Sprintf("%s/%04d%02d/%02d/node_%02d.html", baseURL, d.Year, d.Month, d.Day, n)
}

// Prev returns the previous calendar day.
func (d EditionDate) Prev() EditionDate {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, beijing)
	t = t.AddDate(0, 0, -1)

	return EditionDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}
