// Package cli provides the presentation helpers shared by the labourlog
// commands and TUI: number and entry formatting, and confirmation prompts.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/overtime"
	"github.com/markargand/labourlog/internal/timeutil"
)

// ShortIDLen is how many id characters are shown in listings
const ShortIDLen = 8

// FormatHours formats hours with two decimals, e.g. "7.50".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

// FormatMinutes formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// ShortID returns the first ShortIDLen characters of id.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// FormatTimes returns "HH:MM-HH:MM", or "manual" for entries logged by hours.
func FormatTimes(e entry.TimeEntry) string {
	if e.Start == "" && e.End == "" {
		return "manual"
	}
	return e.Start + "-" + e.End
}

// FormatStatus returns the status with a lock marker for locked entries.
func FormatStatus(e entry.TimeEntry) string {
	if e.Locked {
		return string(e.Status) + " [locked]"
	}
	return string(e.Status)
}

// FormatSplit formats an overtime split, e.g. "8.00 + 1.50 OT".
func FormatSplit(s overtime.Split) string {
	if s.OT == 0 {
		return FormatHours(s.Base)
	}
	return fmt.Sprintf("%s + %s OT", FormatHours(s.Base), FormatHours(s.OT))
}

// FormatEntryLine formats one entry for a listing.
func FormatEntryLine(e entry.TimeEntry, split overtime.Split, dir *entry.Directory) string {
	line := fmt.Sprintf("%-8s  %s  %-16s %-8s %-11s %5sh  (%s)  %s",
		ShortID(e.ID), e.Date, truncate(dir.EmployeeName(e.EmployeeID), 16),
		dir.ProjectCode(e.ProjectID), FormatTimes(e), FormatHours(e.Hours),
		FormatSplit(split), FormatStatus(e))
	if e.WorkType != "" {
		line += "  " + e.WorkType
	}
	if e.Notes != "" {
		line += "  \"" + truncate(e.Notes, 40) + "\""
	}
	return line
}

// FormatWeek formats an ISO week label with its date range,
// e.g. "2024-W10 (2024-03-04 to 2024-03-10)".
func FormatWeek(label string) string {
	from, to, err := timeutil.WeekDates(label)
	if err != nil {
		return label
	}
	return fmt.Sprintf("%s (%s to %s)", label, from, to)
}

// DescribeRange describes an inclusive date range for headings.
func DescribeRange(from, to string) string {
	switch {
	case from == "" && to == "":
		return "all dates"
	case from == to:
		return from
	case from == "":
		return "until " + to
	case to == "":
		return "from " + from
	}
	return from + " to " + to
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") && !strings.HasSuffix(word, "ey") {
		return word[:len(word)-1] + "ies"
	}
	return word + "s"
}

// Confirm prints question and reports whether the user answered yes.
func Confirm(stdout io.Writer, stdin io.Reader, question string) bool {
	_, _ = fmt.Fprintf(stdout, "%s [y/N]: ", question)

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// ReadLine prints prompt and returns the next input line, trimmed.
func ReadLine(stdout io.Writer, stdin io.Reader, prompt string) string {
	_, _ = fmt.Fprint(stdout, prompt)
	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
