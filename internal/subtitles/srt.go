// Package subtitles handles the SRT documents produced by transcription and
// the cleanup pass that reshapes them for vertical clips.
package subtitles

import (
	"fmt"
	"strings"
	"time"
)

// Cue is one subtitle entry: an index, a display window and the text.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// ParseSRT reads an SRT document into cues. Blocks missing an index, a
// timing line or text are skipped rather than failing the whole file;
// transcribers emit the occasional empty block.
func ParseSRT(data string) ([]Cue, error) {
	normalized := strings.ReplaceAll(data, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(normalized), "\n\n")

	var cues []Cue
	for _, block := range blocks {
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		var index int
		if _, err := fmt.Sscanf(strings.TrimSpace(lines[0]), "%d", &index); err != nil {
			continue
		}

		start, end, err := parseTiming(lines[1])
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", index, err)
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], " "),
		})
	}
	return cues, nil
}

// WriteSRT renders cues back into SRT form, reindexing from 1.
func WriteSRT(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatTimestamp(cue.Start), FormatTimestamp(cue.End), cue.Text)
	}
	return b.String()
}

// CleanForShorts joins each cue's text onto one logical line and rewraps it
// at the given width so burned-in subtitles fit a vertical frame. A width
// of zero or less uses the historical 35 columns.
func CleanForShorts(cues []Cue, width int) []Cue {
	if width <= 0 {
		width = 35
	}
	out := make([]Cue, len(cues))
	for i, cue := range cues {
		cue.Text = wrap(cue.Text, width)
		out[i] = cue
	}
	return out
}

// FormatTimestamp renders a duration as the SRT HH:MM:SS,mmm form.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	ms := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func parseTiming(line string) (time.Duration, time.Duration, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed timing line %q", line)
	}
	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err := parseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseTimestamp(value string) (time.Duration, error) {
	var h, m, s, ms int
	if _, err := fmt.Sscanf(value, "%d:%d:%d,%d", &h, &m, &s, &ms); err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", value)
	}
	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// wrap greedily breaks text on spaces so no line exceeds width. Words
// longer than the width stand alone on their own line.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		switch {
		case i == 0:
			b.WriteString(word)
			lineLen = len([]rune(word))
		case lineLen+1+len([]rune(word)) > width:
			b.WriteString("\n")
			b.WriteString(word)
			lineLen = len([]rune(word))
		default:
			b.WriteString(" ")
			b.WriteString(word)
			lineLen += 1 + len([]rune(word))
		}
	}
	return b.String()
}
