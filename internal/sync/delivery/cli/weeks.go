package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// weekPath resolves a schedule document inside an agenda tree:
// <root>/<year>/periode_<period>/semaine_<week>.md
func weekPath(root string, year, period, week int) string {
	return filepath.Join(periodDir(root, year, period), fmt.Sprintf("semaine_%d.md", week))
}

func weekPaths(root string, year, period int, weeks []int) []string {
	paths := make([]string, 0, len(weeks))
	for _, week := range weeks {
		paths = append(paths, weekPath(root, year, period, week))
	}
	return paths
}

func periodDir(root string, year, period int) string {
	return filepath.Join(root, strconv.Itoa(year), fmt.Sprintf("periode_%d", period))
}

// weekNumberOf extracts the week number from a file name like
// "semaine_36.md". The second value is false for anything else.
func weekNumberOf(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "semaine_")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, ".md")
	if !ok {
		return 0, false
	}
	week, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return week, true
}

// listWeeks returns the week numbers available in a period directory, in
// ascending order.
func listWeeks(root string, year, period int) ([]int, error) {
	entries, err := os.ReadDir(periodDir(root, year, period))
	if err != nil {
		return nil, fmt.Errorf("failed to list period directory: %w", err)
	}

	var weeks []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if week, ok := weekNumberOf(entry.Name()); ok {
			weeks = append(weeks, week)
		}
	}
	sort.Ints(weeks)
	return weeks, nil
}

// schoolYearOf returns the calendar year a school year starts in. August
// through December belong to the year that just started, earlier months to
// the year started the previous autumn.
func schoolYearOf(ref time.Time) int {
	if ref.Month() >= time.August {
		return ref.Year()
	}
	return ref.Year() - 1
}
