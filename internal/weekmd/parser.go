package weekmd

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"markdown-calendar-sync/internal/model"
)

// dayHeaderPrefix introduces a new day block: "## Lundi 04 septembre".
const dayHeaderPrefix = "## "

// frenchMonths translates the month names used in the schedule documents.
var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"février":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"août":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December,
}

// Parser turns weekly-schedule markdown documents into calendar events.
// The reference time for year inference is passed per call, never read from
// the system clock, so parses are reproducible.
type Parser struct {
	location     *time.Location
	cet          *time.Location // offset source for timed-event rendering
	timezone     string
	defaultColor string
	colors       []ColorRule
	md           goldmark.Markdown
}

// New creates a parser for the given timezone and color table.
func New(cfg Config) (*Parser, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.DefaultColor == "" {
		return nil, fmt.Errorf("%w: empty default color", ErrBadFormat)
	}
	// CET/CEST drives the rendered UTC offset. When the zone database has
	// no CET entry the offset falls back to 0.
	cet, err := time.LoadLocation("CET")
	if err != nil {
		cet = nil
	}
	return &Parser{
		location:     loc,
		cet:          cet,
		timezone:     cfg.Timezone,
		defaultColor: cfg.DefaultColor,
		colors:       cfg.Colors,
		md:           goldmark.New(),
	}, nil
}

// WithDefaultColor returns a parser whose fallback color is colorID. The
// empty string keeps the configured default. The receiver is not modified.
func (p *Parser) WithDefaultColor(colorID string) *Parser {
	if colorID == "" || colorID == p.defaultColor {
		return p
	}
	clone := *p
	clone.defaultColor = colorID
	return &clone
}

// ParseFile reads and parses a schedule document.
func (p *Parser) ParseFile(path string, ref time.Time) ([]model.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}
	return p.Parse(string(data), ref)
}

// Parse converts document text into events, in document order. Any
// malformed header aborts the whole parse: no partial result is returned.
func (p *Parser) Parse(text string, ref time.Time) ([]model.Event, error) {
	lines := strings.Split(text, "\n")

	blocks, err := p.splitDays(lines, ref)
	if err != nil {
		return nil, err
	}

	var events []model.Event
	for _, block := range blocks {
		dayEvents, err := p.parseDayEvents(block.date, splitItems(block.lines), ref)
		if err != nil {
			return nil, err
		}
		events = append(events, dayEvents...)
	}
	return events, nil
}

// dayBlock is the pre-parse intermediate: one calendar date and the raw
// lines belonging to it.
type dayBlock struct {
	date  time.Time
	lines []string
}

// splitDays cuts the document at its "## " headers. Each block spans from
// just after its header to just before the next one (or end of document).
func (p *Parser) splitDays(lines []string, ref time.Time) ([]dayBlock, error) {
	var indexes []int
	for i, line := range lines {
		if strings.HasPrefix(line, dayHeaderPrefix) {
			indexes = append(indexes, i)
		}
	}

	blocks := make([]dayBlock, 0, len(indexes))
	for i, start := range indexes {
		end := len(lines)
		if i+1 < len(indexes) {
			end = indexes[i+1]
		}
		date, err := p.parseDateLine(lines[start], ref)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, dayBlock{date: date, lines: lines[start+1 : end]})
	}
	return blocks, nil
}

// parseDateLine reads a day header like "## Lundi 04 septembre". The
// weekday name is informational only and discarded.
func (p *Parser) parseDateLine(line string, ref time.Time) (time.Time, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, dayHeaderPrefix))
	return p.parseDateFields(strings.Fields(rest), ref)
}

// parseDateFields parses [weekday, day-of-month, month-name, ...] into a
// date at midnight. The year is absent from the document and inferred from
// the reference time.
func (p *Parser) parseDateFields(fields []string, ref time.Time) (time.Time, error) {
	if len(fields) < 3 {
		return time.Time{}, fmt.Errorf("%w: incomplete date %q", ErrBadFormat, strings.Join(fields, " "))
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad day of month %q", ErrBadFormat, fields[1])
	}
	month, ok := frenchMonths[strings.ToLower(fields[2])]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownMonth, fields[2])
	}

	date := time.Date(inferYear(month, ref), month, day, 0, 0, 0, 0, p.location)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for %s", ErrBadFormat, day, month)
	}
	return date, nil
}

// inferYear resolves the missing year with the academic-year convention: a
// document written between August and December that names a January–July
// month refers to the next calendar year.
func inferYear(month time.Month, ref time.Time) int {
	if month <= time.July && ref.Month() >= time.August {
		return ref.Year() + 1
	}
	return ref.Year()
}

// splitItems groups a day block's lines into items. A marker line starts a
// new item and becomes its header (marker stripped); non-marker lines and
// blank lines belong to the current item's body. Lines before the first
// marker are ignored.
func splitItems(lines []string) [][]string {
	var items [][]string
	var current []string
	for _, line := range lines {
		if isMarkerLine(line) {
			if current != nil {
				items = append(items, current)
			}
			current = []string{strings.TrimPrefix(line[1:], " ")}
			continue
		}
		if current == nil {
			continue
		}
		current = append(current, line)
	}
	if current != nil {
		items = append(items, current)
	}
	return items
}

func isMarkerLine(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case '-', '*', '+':
		return true
	}
	return false
}

// parseDayEvents builds the events of one day block, consuming an explicit
// end-date marker line after an all-day item when one follows it.
func (p *Parser) parseDayEvents(day time.Time, items [][]string, ref time.Time) ([]model.Event, error) {
	var events []model.Event
	for i := 0; i < len(items); i++ {
		item := items[i]
		header := strings.TrimSpace(item[0])
		if header == "" {
			continue
		}
		fields := strings.Split(header, " - ")

		var ev model.Event
		var err error
		if isTimedHeader(fields[0]) {
			ev, err = p.parseTimedEvent(day, fields)
		} else {
			endDate := day
			if inline, ok := p.inlineEndDate(fields, ref); ok {
				endDate = inline
			} else if next, ok := p.endDateOf(items, i, ref); ok {
				endDate = next
				i++
			}
			ev = p.parseAllDayEvent(day, endDate, fields)
		}
		if err != nil {
			return nil, err
		}

		ev.Description, err = p.renderDescription(item[1:])
		if err != nil {
			return nil, err
		}
		ev.ColorID = p.colorFor(ev.Summary)

		if err := ev.Validate(); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// inlineEndDate handles the legacy single-line multi-day form, where the
// third header field is itself a date expression:
// "Voyage scolaire - Londres - Vendredi 15 septembre".
func (p *Parser) inlineEndDate(fields []string, ref time.Time) (time.Time, bool) {
	if len(fields) < 3 {
		return time.Time{}, false
	}
	date, err := p.parseDateFields(strings.Fields(strings.Trim(fields[2], "- ")), ref)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// endDateOf reports whether the item after index i is a bare date line
// ("- Vendredi 15 septembre"), which closes a multi-day all-day event.
func (p *Parser) endDateOf(items [][]string, i int, ref time.Time) (time.Time, bool) {
	if i+1 >= len(items) {
		return time.Time{}, false
	}
	header := strings.TrimSpace(items[i+1][0])
	date, err := p.parseDateFields(strings.Fields(header), ref)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// isTimedHeader reports whether the first header field opens with a decimal
// digit, i.e. a clock-time range.
func isTimedHeader(field string) bool {
	return field != "" && field[0] >= '0' && field[0] <= '9'
}

// parseTimedEvent reads "<Hh><MM>-<Hh><MM> - <location> - <summary>".
func (p *Parser) parseTimedEvent(day time.Time, fields []string) (model.Event, error) {
	bounds := strings.Split(strings.TrimSpace(fields[0]), "-")
	if len(bounds) != 2 {
		return model.Event{}, fmt.Errorf("%w: bad time range %q", ErrBadFormat, fields[0])
	}
	start, err := p.timedBound(day, bounds[0])
	if err != nil {
		return model.Event{}, err
	}
	end, err := p.timedBound(day, bounds[1])
	if err != nil {
		return model.Event{}, err
	}

	ev := model.Event{Start: start, End: end, Summary: model.NoSummary}
	if len(fields) > 1 {
		ev.Location = fields[1]
	}
	if len(fields) > 2 {
		ev.Summary = fields[2]
	}
	return ev, nil
}

// parseAllDayEvent reads "<location> - <summary>" with both bounds rendered
// in the date shape. A single-day event ends the day it starts.
func (p *Parser) parseAllDayEvent(start, end time.Time, fields []string) model.Event {
	ev := model.Event{
		Start:   model.NewAllDay(start.Format("2006-01-02"), p.timezone),
		End:     model.NewAllDay(end.Format("2006-01-02"), p.timezone),
		Summary: model.NoSummary,
	}
	ev.Location = fields[0]
	if len(fields) > 1 {
		ev.Summary = fields[1]
	}
	return ev
}

// timedBound turns a clock token like "8h30" (or "8h", minutes implied 00)
// into a timed bound on the given day.
func (p *Parser) timedBound(day time.Time, clock string) (model.EventTime, error) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		return model.EventTime{}, err
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, p.location)
	return model.NewTimed(p.formatTimed(t), p.timezone), nil
}

func parseClock(clock string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(clock), "h")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: bad clock token %q", ErrBadFormat, clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour > 23 {
		return 0, 0, fmt.Errorf("%w: bad hour in %q", ErrBadFormat, clock)
	}
	minute := 0
	if parts[1] != "" {
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute > 59 {
			return 0, 0, fmt.Errorf("%w: bad minutes in %q", ErrBadFormat, clock)
		}
	}
	return hour, minute, nil
}

// formatTimed renders a timed bound with the explicit +01:00 or +02:00
// suffix CET observes at that date. The remote store's update matching is
// sensitive to the exact string form, so the offset is written by hand
// instead of relying on RFC3339 serialization of the parser's location.
func (p *Parser) formatTimed(t time.Time) string {
	return t.Format("2006-01-02T15:04:05") + fmt.Sprintf("+0%d:00", p.cetOffsetHours(t))
}

func (p *Parser) cetOffsetHours(t time.Time) int {
	if p.cet == nil {
		return 0
	}
	_, secs := t.In(p.cet).Zone()
	return secs / 3600
}

// renderDescription joins the body lines (trimmed, blank lines kept as
// markdown paragraph breaks) and converts the markdown subset to HTML.
func (p *Parser) renderDescription(body []string) (string, error) {
	kept := make([]string, len(body))
	hasContent := false
	for i, line := range body {
		kept[i] = strings.TrimSpace(line)
		if kept[i] != "" {
			hasContent = true
		}
	}
	if !hasContent {
		return "", nil
	}

	var buf bytes.Buffer
	if err := p.md.Convert([]byte(strings.Join(kept, "\n")), &buf); err != nil {
		return "", fmt.Errorf("failed to render description: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// colorFor assigns the color id of the first rule whose keyword occurs in
// the summary, case-insensitively. No hit falls back to the default color.
func (p *Parser) colorFor(summary string) string {
	lower := strings.ToLower(summary)
	for _, rule := range p.colors {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return rule.ColorID
			}
		}
	}
	return p.defaultColor
}
