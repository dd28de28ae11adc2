// Package schedule implements the festival schedule engine: parsing raw
// comma-delimited schedule data into an in-memory day/stage model, deriving
// stable show identifiers, and projecting the model into the two views the
// planner needs (the stage grid in source order and a flattened chronological
// timeline).  The package performs no I/O; callers hand it the raw text and
// read the resulting Store.
package schedule

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned by Parse when the supplied text contains no data
// at all.  Malformed rows inside otherwise valid input never produce an
// error; they are dropped so one bad row cannot take down the whole load.
var ErrEmptyInput = errors.New("schedule: empty input")

// ParseLine splits one line of comma-delimited text into its field values.
// A double quote toggles an "inside quotes" mode; commas inside quotes are
// literal characters rather than separators.  Quote characters themselves
// are not kept and no escaping scheme is supported.  Every field is trimmed
// of surrounding whitespace.
func ParseLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

// Parse reads an entire CSV blob and returns a freshly populated Store.  The
// first line is the header and is discarded.  Blank lines are skipped.  A
// data line is accepted only when it yields at least four fields and day,
// time, stage and artist are all non-empty after trimming; anything else is
// silently dropped.  Extra fields beyond the fourth are ignored.
func Parse(csvText string) (*Store, error) {
	if strings.TrimSpace(csvText) == "" {
		return nil, ErrEmptyInput
	}

	store := NewStore()
	lines := strings.Split(strings.TrimSpace(csvText), "\n")

	// Start at 1 to skip the header row.
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		values := ParseLine(line)
		if len(values) < 4 {
			continue
		}
		day := values[0]
		timeTok := values[1]
		stage := values[2]
		artist := values[3]
		if day == "" || timeTok == "" || stage == "" || artist == "" {
			continue
		}
		store.AddShow(day, timeTok, stage, artist)
	}
	return store, nil
}
