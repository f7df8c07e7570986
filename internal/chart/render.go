package chart

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Kind selects how Render draws buckets.
type Kind string

// Chart kinds.
const (
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
	KindLine Kind = "line"
)

// ErrUnknownKind is returned for a chart kind other than bar, pie, or line.
var ErrUnknownKind = errors.New("unknown chart kind")

// Width is the number of cells used by the scaled part of a chart row.
const Width = 40

const (
	barGlyph   = "█"
	pointGlyph = "•"
	trackGlyph = "·"
)

// ParseKind validates a chart kind; empty means bar.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindBar, nil
	case KindBar, KindPie, KindLine:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Render writes one line per bucket. Bars are scaled to the largest count,
// pie rows show each bucket's share of the total, and line rows place a
// point at the scaled position on a dotted track.
func Render(w io.Writer, kind Kind, buckets []Bucket) error {
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, "no data")
		return err
	}

	labelWidth, maxCount := 0, 0
	for _, b := range buckets {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		maxCount = max(maxCount, b.Count)
	}
	total := Total(buckets)

	for _, b := range buckets {
		label := b.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		var line string
		switch kind {
		case KindBar, "":
			line = fmt.Sprintf("%s  %s %d", label, strings.Repeat(barGlyph, scale(b.Count, maxCount)), b.Count)
		case KindPie:
			line = fmt.Sprintf("%s  %5.1f%%  %s", label, percent(b.Count, total), strings.Repeat(barGlyph, scale(b.Count, total)))
		case KindLine:
			pos := max(scale(b.Count, maxCount), 1) - 1
			track := strings.Repeat(trackGlyph, pos) + pointGlyph + strings.Repeat(trackGlyph, Width-pos-1)
			line = fmt.Sprintf("%s  %s %d", label, track, b.Count)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// scale maps n in [0, of] onto [0, Width], rounding to nearest. A non-zero
// count always gets at least one cell.
func scale(n, of int) int {
	if of <= 0 || n <= 0 {
		return 0
	}
	cells := (n*Width + of/2) / of
	return max(cells, 1)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// sortByCount orders buckets by count descending; the sort is stable so
// equal counts keep first-seen order.
func sortByCount(buckets []Bucket) {
	slices.SortStableFunc(buckets, func(a, b Bucket) int { return b.Count - a.Count })
}
