package timeutil

import (
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		errPart  string
	}{
		{"2024-01-15", "2024-01-15", ""},
		{"15/01/2024", "2024-01-15", ""},
		{"", "", "cannot be empty"},
		{"2024", "", "missing month and day"},
		{"2024-01", "", "missing day"},
		{"01-15", "", "missing year"},
		{"15/01", "", "missing year"},
		{"2024-01-15-01", "", "too many date parts"},
		{"yesterday", "", "invalid date format"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.errPart != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errPart) {
					t.Errorf("ParseDate(%q) error = %v, expected it to contain %q", tt.input, err, tt.errPart)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got.Format(DateLayout) != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, got.Format(DateLayout), tt.expected)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseDate(%q) location = %v, expected UTC", tt.input, got.Location())
			}
		})
	}
}

func TestDateInRange(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		from     string
		to       string
		expected bool
	}{
		{"open range", "2024-01-15", "", "", true},
		{"inside", "2024-01-15", "2024-01-01", "2024-01-31", true},
		{"on lower bound", "2024-01-01", "2024-01-01", "2024-01-31", true},
		{"on upper bound", "2024-01-31", "2024-01-01", "2024-01-31", true},
		{"before", "2023-12-31", "2024-01-01", "2024-01-31", false},
		{"after", "2024-02-01", "2024-01-01", "2024-01-31", false},
		{"only from", "2024-05-01", "2024-01-01", "", true},
		{"only to", "2024-05-01", "", "2024-01-01", false},
		{"bad date", "junk", "2024-01-01", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateInRange(tt.date, tt.from, tt.to); got != tt.expected {
				t.Errorf("DateInRange(%q, %q, %q) = %v, expected %v", tt.date, tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestParseDateRangeFlags(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

	from, to, err := ParseDateRangeFlags("", "", 7, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from != "2024-03-04" || to != "2024-03-10" {
		t.Errorf("last 7 = %s..%s, expected 2024-03-04..2024-03-10", from, to)
	}

	from, to, err = ParseDateRangeFlags("01/03/2024", "2024-03-05", 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from != "2024-03-01" || to != "2024-03-05" {
		t.Errorf("explicit range = %s..%s", from, to)
	}

	if _, _, err := ParseDateRangeFlags("2024-03-01", "", 7, now); err == nil {
		t.Error("expected error combining --last with --from")
	}
	if _, _, err := ParseDateRangeFlags("2024-03-09", "2024-03-01", 0, now); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, _, err := ParseDateRangeFlags("nope", "", 0, now); err == nil {
		t.Error("expected error for bad --from")
	}
}

func TestStartOfWeek(t *testing.T) {
	sunday := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	got := StartOfWeek(sunday)
	if got.Format(DateLayout) != "2024-03-04" {
		t.Errorf("StartOfWeek(Sunday) = %s, expected 2024-03-04", got.Format(DateLayout))
	}
}
