package models

import (
	"errors"
	"testing"
)

func TestParseEditionDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    EditionDate
		wantErr bool
	}{
		{name: "valid", input: "20250410", want: EditionDate{Year: 2025, Month: 4, Day: 10}},
		{name: "too short", input: "2025041", wantErr: true},
		{name: "too long", input: "202504101", wantErr: true},
		{name: "non-numeric", input: "2025041x", wantErr: true},
		{name: "month out of range", input: "20251310", wantErr: true},
		{name: "day out of range", input: "20250432", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEditionDate(tt.input)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("expected ErrInvalidDate, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseEditionDate(%q) failed: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("ParseEditionDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEditionDate_Formats(t *testing.T) {
	d := EditionDate{Year: 2025, Month: 4, Day: 10}

	if got := d.String(); got != "20250410" {
		t.Errorf("String() = %q", got)
	}

	if got := d.Display(); got != "2025年04月10日" {
		t.Errorf("Display() = %q", got)
	}

	want := "http://paper.people.com.cn/rmrb/pc/layout/202504/10/node_01.html"
	if got := d.NodeURL("http://paper.people.com.cn/rmrb/pc/layout", 1); got != want {
		t.Errorf("NodeURL() = %q, want %q", got, want)
	}
}

func TestEditionDate_Prev(t *testing.T) {
	tests := []struct {
		name string
		date EditionDate
		want EditionDate
	}{
		{name: "mid-month", date: EditionDate{2025, 4, 10}, want: EditionDate{2025, 4, 9}},
		{name: "month boundary", date: EditionDate{2025, 4, 1}, want: EditionDate{2025, 3, 31}},
		{name: "year boundary", date: EditionDate{2025, 1, 1}, want: EditionDate{2024, 12, 31}},
		{name: "leap day", date: EditionDate{2024, 3, 1}, want: EditionDate{2024, 2, 29}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.Prev(); got != tt.want {
				t.Errorf("Prev(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestToday_RoundTrips(t *testing.T) {
	today := Today()

	parsed, err := ParseEditionDate(today.String())
	if err != nil {
		t.Fatalf("today's date failed to parse: %v", err)
	}

	if parsed != today {
		t.Errorf("round trip changed the date: %v vs %v", parsed, today)
	}
}
