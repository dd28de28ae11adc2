package schedule

import "sort"

// Show is one scheduled performance.  Time keeps the raw display string
// from the source data; minute values and display forms are always derived
// from it via the parse functions, never stored as a mutated copy.
type Show struct {
	ID     string `json:"id"`
	Day    string `json:"day"`
	Stage  string `json:"stage"`
	Time   string `json:"time"`
	Artist string `json:"artist"`
}

// Store is the in-memory model for one loaded dataset: a nested mapping of
// day to stage to shows in arrival order, plus the first-seen order of days
// and stages.  Stage display order is source order, not alphabetical, which
// is why the first-seen sequence is tracked explicitly.  A Store is built
// once per load and is read-only afterwards; reloading replaces the whole
// Store rather than patching it.
type Store struct {
	days       []string                     // first-seen day order
	stageOrder []string                     // first-seen stage order across the whole dataset
	buckets    map[string]map[string][]Show // day -> stage -> shows in arrival order
	count      int
}

// NewStore returns an empty store.  Each load constructs a fresh one; there
// is no shared or process-wide registry.
func NewStore() *Store {
	return &Store{buckets: make(map[string]map[string][]Show)}
}

// AddShow registers the day and stage in their first-seen sequences, builds
// the show's identifier and appends it to the (day, stage) bucket.
// Malformed rows are filtered upstream, so there is nothing to fail here.
func (s *Store) AddShow(day, timeTok, stage, artist string) {
	if _, ok := s.buckets[day]; !ok {
		s.buckets[day] = make(map[string][]Show)
		s.days = append(s.days, day)
	}
	if !containsString(s.stageOrder, stage) {
		s.stageOrder = append(s.stageOrder, stage)
	}

	show := Show{
		ID:     MakeID(day, stage, artist, timeTok),
		Day:    day,
		Stage:  stage,
		Time:   timeTok,
		Artist: artist,
	}
	s.buckets[day][stage] = append(s.buckets[day][stage], show)
	s.count++
}

// Days returns the distinct days of the dataset ordered by festival day
// number.  The sort is stable, so unknown labels (which all map to day 1)
// keep their first-seen relative order.
func (s *Store) Days() []string {
	days := make([]string, len(s.days))
	copy(days, s.days)
	sort.SliceStable(days, func(i, j int) bool {
		return DayNumber(days[i]) < DayNumber(days[j])
	})
	return days
}

// StageOrderForDay returns the stages that have at least one show on the
// given day, in the order the stages first appeared anywhere in the source.
// The ordering is the global first-seen sequence filtered per day, not a
// per-day recomputation.
func (s *Store) StageOrderForDay(day string) []string {
	var stages []string
	for _, stage := range s.stageOrder {
		if len(s.buckets[day][stage]) > 0 {
			stages = append(stages, stage)
		}
	}
	return stages
}

// ShowsFor returns the shows in the (day, stage) bucket in arrival order.
// The returned slice is the store's own; callers must not mutate it.
func (s *Store) ShowsFor(day, stage string) []Show {
	return s.buckets[day][stage]
}

// Has reports whether a show with the given ID exists in this dataset.
func (s *Store) Has(id string) bool {
	_, ok := s.Lookup(id)
	return ok
}

// Lookup finds a show by its identifier, walking days and stages in display
// order.  Datasets are small (a festival weekend), so a linear scan keeps
// the store free of a second index that could drift from the buckets.
func (s *Store) Lookup(id string) (Show, bool) {
	for _, day := range s.Days() {
		for _, stage := range s.StageOrderForDay(day) {
			for _, show := range s.buckets[day][stage] {
				if show.ID == id {
					return show, true
				}
			}
		}
	}
	return Show{}, false
}

// Len returns the total number of shows loaded.
func (s *Store) Len() int {
	return s.count
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
