package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWeekNumberOf(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"semaine_36.md", 36, true},
		{"semaine_1.md", 1, true},
		{"semaine_.md", 0, false},
		{"semaine_36.txt", 0, false},
		{"periode_2", 0, false},
		{"notes.md", 0, false},
	}
	for _, tt := range tests {
		got, ok := weekNumberOf(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("weekNumberOf(%q) = %d, %v, want %d, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWeekPath(t *testing.T) {
	got := weekPath("/data/lycee", 2024, 2, 46)
	want := filepath.Join("/data/lycee", "2024", "periode_2", "semaine_46.md")
	if got != want {
		t.Errorf("weekPath = %q, want %q", got, want)
	}
}

func TestListWeeks(t *testing.T) {
	root := t.TempDir()
	dir := periodDir(root, 2024, 1)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"semaine_38.md", "semaine_36.md", "semaine_37.md", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("## Lundi 02 septembre\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	weeks, err := listWeeks(root, 2024, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{36, 37, 38}
	if len(weeks) != len(want) {
		t.Fatalf("got %v, want %v", weeks, want)
	}
	for i := range want {
		if weeks[i] != want[i] {
			t.Fatalf("got %v, want %v", weeks, want)
		}
	}
}

func TestListWeeksMissingDir(t *testing.T) {
	if _, err := listWeeks(t.TempDir(), 2024, 3); err == nil {
		t.Fatal("expected an error for a missing period directory")
	}
}

func TestSchoolYearOf(t *testing.T) {
	tests := []struct {
		ref  time.Time
		want int
	}{
		{time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 2024},
		{time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC), 2024},
	}
	for _, tt := range tests {
		if got := schoolYearOf(tt.ref); got != tt.want {
			t.Errorf("schoolYearOf(%s) = %d, want %d", tt.ref.Format("2006-01-02"), got, tt.want)
		}
	}
}
