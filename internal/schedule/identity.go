package schedule

import (
	"fmt"
	"regexp"
	"strings"
)

// Festival days in their fixed order.  The day number doubles as the sort
// key for day grouping; unknown day labels fall back to 1 so stray rows
// still render (first) instead of disappearing.
var dayNames = []string{"Friday", "Saturday", "Sunday"}

var dayNumbers = map[string]int{
	"Friday":   1,
	"Saturday": 2,
	"Sunday":   3,
}

const lastDayNumber = 3

// DayNumber maps a day label to its festival order, defaulting to 1 for
// labels outside the fixed set.
func DayNumber(day string) int {
	if n, ok := dayNumbers[day]; ok {
		return n
	}
	return 1
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	artistDropRe = regexp.MustCompile(`[^a-z0-9\s-]`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
	timeDropRe   = regexp.MustCompile(`[^a-z0-9]`)
)

// MakeID derives the stable identifier for a show from its four defining
// fields.  The result is deterministic, so reloading the same dataset keeps
// attendance and comments attached to the same shows.  Two rows that agree
// on all four fields collide into one ID; the planner has always merged
// true duplicate bookings this way and downstream data is keyed on it, so
// the collision is kept rather than disambiguated.
func MakeID(day, stage, artist, timeTok string) string {
	stageSlug := whitespaceRe.ReplaceAllString(strings.ToLower(stage), "-")

	artistSlug := strings.ToLower(artist)
	artistSlug = artistDropRe.ReplaceAllString(artistSlug, "")
	artistSlug = whitespaceRe.ReplaceAllString(artistSlug, "-")
	artistSlug = hyphenRunRe.ReplaceAllString(artistSlug, "-")
	artistSlug = strings.Trim(artistSlug, "-")

	timeSlug := timeDropRe.ReplaceAllString(strings.ToLower(timeTok), "")

	return fmt.Sprintf("show_%d_%s_%s_%s", DayNumber(day), stageSlug, artistSlug, timeSlug)
}
