package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
)

// LocalStore is the single-device fallback: the whole planner state lives
// in memory and is flushed to one JSON file after every write. Writes go
// through an atomic rename so a crash mid-flush never truncates the
// snapshot. There is no sharing between devices in this mode — that is the
// accepted degradation when the database is unreachable.
type LocalStore struct {
	mu   sync.Mutex
	path string

	attendance map[string]map[string]model.Attendance // show ID -> name -> mark
	comments   map[string][]model.Comment             // show ID -> thread
}

// localSnapshot is the on-disk shape of the fallback file.
type localSnapshot struct {
	Attendance map[string]map[string]model.Attendance `json:"attendance"`
	Comments   map[string][]model.Comment             `json:"comments"`
}

// OpenLocalStore loads the snapshot at path, or starts empty when the file
// does not exist yet. Any other read or decode failure is surfaced: silently
// discarding a previous snapshot would lose the group's planning.
func OpenLocalStore(path string) (*LocalStore, error) {
	s := &LocalStore{
		path:       path,
		attendance: make(map[string]map[string]model.Attendance),
		comments:   make(map[string][]model.Comment),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("local store: read snapshot: %w", err)
	}
	var snap localSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("local store: decode snapshot: %w", err)
	}
	if snap.Attendance != nil {
		s.attendance = snap.Attendance
	}
	if snap.Comments != nil {
		s.comments = snap.Comments
	}
	return s, nil
}

// flush writes the current state to disk. Callers must hold the mutex.
func (s *LocalStore) flush() error {
	data, err := json.MarshalIndent(localSnapshot{
		Attendance: s.attendance,
		Comments:   s.comments,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("local store: encode snapshot: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("local store: write snapshot: %w", err)
	}
	return nil
}

func (s *LocalStore) SetAttendance(_ context.Context, showID, name string, state model.AttendanceState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attendance[showID] == nil {
		s.attendance[showID] = make(map[string]model.Attendance)
	}
	s.attendance[showID][name] = model.Attendance{
		ShowID: showID,
		Name:   name,
		State:  state,
	}
	return s.flush()
}

func (s *LocalStore) GetAttendance(_ context.Context, showID, name string) (model.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attendance[showID][name]
	if !ok {
		return model.Attendance{}, ErrNotFound
	}
	return a, nil
}

func (s *LocalStore) ListAttendance(_ context.Context, showID string) ([]model.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return liveMarks(s.attendance[showID]), nil
}

func (s *LocalStore) ShowIDsFor(_ context.Context, name string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make(map[string]bool)
	for showID, marks := range s.attendance {
		if a, ok := marks[name]; ok && a.State != model.StateDeleted {
			ids[showID] = true
		}
	}
	return ids, nil
}

func (s *LocalStore) AddComment(_ context.Context, cm model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[cm.ShowID] = append(s.comments[cm.ShowID], cm)
	return s.flush()
}

func (s *LocalStore) DeleteComment(_ context.Context, showID, commentID, author string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread := s.comments[showID]
	for i, cm := range thread {
		if cm.ID != commentID {
			continue
		}
		if cm.Author != author {
			return ErrForbidden
		}
		s.comments[showID] = append(thread[:i:i], thread[i+1:]...)
		if len(s.comments[showID]) == 0 {
			delete(s.comments, showID)
		}
		return s.flush()
	}
	return ErrNotFound
}

func (s *LocalStore) ListComments(_ context.Context, showID string) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	thread := s.comments[showID]
	out := make([]model.Comment, len(thread))
	copy(out, thread)
	return out, nil
}

func (s *LocalStore) Export(_ context.Context) (model.PlannerExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	export := model.PlannerExport{
		Attendance: make(map[string][]model.Attendance),
		Comments:   make(map[string][]model.Comment),
	}
	for showID, marks := range s.attendance {
		if live := liveMarks(marks); len(live) > 0 {
			export.Attendance[showID] = live
		}
	}
	for showID, thread := range s.comments {
		out := make([]model.Comment, len(thread))
		copy(out, thread)
		export.Comments[showID] = out
	}
	return export, nil
}

// liveMarks filters tombstones and orders the rest by name so listings are
// deterministic (the map has no useful insertion order to preserve).
func liveMarks(marks map[string]model.Attendance) []model.Attendance {
	var out []model.Attendance
	for _, a := range marks {
		if a.State != model.StateDeleted {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
