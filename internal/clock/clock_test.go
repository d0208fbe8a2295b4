package clock

import (
	"fmt"
	"testing"
)

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"16:30", 990},
		{"23:59", 1439},
		{"7:05", 425},
		{" 09:15 ", 555},
		{"", 0},
		{"garbage", 0},
		{"12", 0},
		{"ab:30", 0},
		{"10:cd", 0},
		{"10:20:30", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := TimeToMinutes(tt.input)
			if got != tt.expected {
				t.Errorf("TimeToMinutes(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{480, "08:00"},
		{990, "16:30"},
		{1439, "23:59"},
		{1500, "25:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := MinutesToTime(tt.minutes)
			if got != tt.expected {
				t.Errorf("MinutesToTime(%d) = %q, expected %q", tt.minutes, got, tt.expected)
			}
		})
	}
}

func TestTimeRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			s := fmt.Sprintf("%02d:%02d", h, m)
			if got := MinutesToTime(TimeToMinutes(s)); got != s {
				t.Fatalf("round trip of %q produced %q", s, got)
			}
		}
	}
}

func TestRoundToIncrement(t *testing.T) {
	tests := []struct {
		name      string
		minutes   int
		increment int
		expected  int
	}{
		{"exact multiple", 480, 15, 480},
		{"rounds down", 487, 15, 480},
		{"below half rounds down", 7, 15, 0},
		{"just over half", 8, 15, 15},
		{"half of ten rounds away from zero", 5, 10, 10},
		{"negative half rounds away from zero", -5, 10, -10},
		{"increment one", 487, 1, 487},
		{"zero increment clamps to one", 487, 0, 487},
		{"negative increment clamps to one", 487, -15, 487},
		{"six minute increment", 500, 6, 498},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToIncrement(tt.minutes, tt.increment)
			if got != tt.expected {
				t.Errorf("RoundToIncrement(%d, %d) = %d, expected %d", tt.minutes, tt.increment, got, tt.expected)
			}
		})
	}
}

func TestRoundToIncrement_Idempotent(t *testing.T) {
	for _, inc := range []int{-1, 0, 1, 5, 6, 10, 15, 30, 60} {
		for m := -200; m <= 1500; m += 7 {
			once := RoundToIncrement(m, inc)
			twice := RoundToIncrement(once, inc)
			if once != twice {
				t.Fatalf("RoundToIncrement not idempotent for m=%d inc=%d: %d then %d", m, inc, once, twice)
			}
		}
	}
}

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00", "08:30", "23:59"}
	invalid := []string{"", "8:30", "24:00", "12:60", "aa:bb", "12-30", "12:3"}

	for _, s := range valid {
		if !IsValidTime(s) {
			t.Errorf("IsValidTime(%q) = false, expected true", s)
		}
	}
	for _, s := range invalid {
		if IsValidTime(s) {
			t.Errorf("IsValidTime(%q) = true, expected false", s)
		}
	}
}
