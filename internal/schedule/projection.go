package schedule

import (
	"sort"
	"strings"
)

// StageGroup is one stage's lineup within a day of the grid view.
type StageGroup struct {
	Stage string `json:"stage"`
	Shows []Show `json:"shows"`
}

// DayGroup is one day of the grid view: stages in source order, each with
// its shows.
type DayGroup struct {
	Day    string       `json:"day"`
	Stages []StageGroup `json:"stages"`
}

// ChronoEntry is one show flattened into the chronological timeline.  Day
// is the effective day after late-night correction and exists only for the
// sort; OriginalDay is what gets displayed.  The two must never be
// conflated when rendering.
type ChronoEntry struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Time          string `json:"time"`
	TimeInMinutes int    `json:"time_in_minutes"`
	Stage         string `json:"stage"`
	Day           string `json:"day"`
	OriginalDay   string `json:"original_day"`
}

// SourceOrder projects the store into the default grid view: days in
// festival order, stages per StageOrderForDay, shows exactly as they
// appeared in the input.  Arrival order is authoritative here — festival
// programs lay out simultaneous slots by curator intent, not clock order.
func (s *Store) SourceOrder() []DayGroup {
	var out []DayGroup
	for _, day := range s.Days() {
		group := DayGroup{Day: day}
		for _, stage := range s.StageOrderForDay(day) {
			group.Stages = append(group.Stages, StageGroup{
				Stage: stage,
				Shows: s.buckets[day][stage],
			})
		}
		out = append(out, group)
	}
	return out
}

// TimeSorted is the explicit "sort by time within stage" variant of the
// grid view.  It is not the default; the grid preserves source order
// unless a caller asks for this.
func (s *Store) TimeSorted() []DayGroup {
	out := s.SourceOrder()
	for di := range out {
		for si := range out[di].Stages {
			shows := make([]Show, len(out[di].Stages[si].Shows))
			copy(shows, out[di].Stages[si].Shows)
			sort.SliceStable(shows, func(i, j int) bool {
				return ParseMinutes(shows[i].Time) < ParseMinutes(shows[j].Time)
			})
			out[di].Stages[si].Shows = shows
		}
	}
	return out
}

// Chronological flattens every show across all days and stages into one
// timeline ordered by (effective day, minutes).  The sort is stable, so
// shows that tie on both keys keep the order they were encountered in the
// source.  Entries carry both the effective and the original day.
func (s *Store) Chronological() []ChronoEntry {
	var entries []ChronoEntry
	for _, group := range s.SourceOrder() {
		for _, sg := range group.Stages {
			for _, show := range sg.Shows {
				minutes, effectiveDay := DayAdjusted(show.Time, show.Day)
				entries = append(entries, ChronoEntry{
					ID:            show.ID,
					Title:         show.Artist,
					Time:          show.Time,
					TimeInMinutes: minutes,
					Stage:         sg.Stage,
					Day:           effectiveDay,
					OriginalDay:   show.Day,
				})
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := DayNumber(entries[i].Day), DayNumber(entries[j].Day)
		if di != dj {
			return di < dj
		}
		return entries[i].TimeInMinutes < entries[j].TimeInMinutes
	})
	return entries
}

// FilterDay keeps the entries whose display day contains the given
// substring, case-insensitively.  It is a plain predicate over the already
// sorted sequence; order is untouched.  An empty filter returns the input.
func FilterDay(entries []ChronoEntry, day string) []ChronoEntry {
	day = strings.ToLower(strings.TrimSpace(day))
	if day == "" || day == "all" {
		return entries
	}
	var out []ChronoEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.OriginalDay), day) {
			out = append(out, e)
		}
	}
	return out
}

// FilterIDs keeps the entries whose show ID is in the given set, preserving
// order.  It backs the "my schedule" view, where the set is the shows an
// attendee is marked on.
func FilterIDs(entries []ChronoEntry, ids map[string]bool) []ChronoEntry {
	var out []ChronoEntry
	for _, e := range entries {
		if ids[e.ID] {
			out = append(out, e)
		}
	}
	return out
}
