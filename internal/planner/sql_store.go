package planner

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
	"github.com/iliyamo/festival-schedule-planner/internal/repository"
)

// SQLStore is the shared, multi-device implementation of Store, delegating
// to the MySQL repositories.
type SQLStore struct {
	attendance *repository.AttendanceRepo
	comments   *repository.CommentRepo
}

// NewSQLStore wires a SQLStore over the given DB handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		attendance: repository.NewAttendanceRepo(db),
		comments:   repository.NewCommentRepo(db),
	}
}

func (s *SQLStore) SetAttendance(ctx context.Context, showID, name string, state model.AttendanceState) error {
	return s.attendance.Set(ctx, showID, name, state)
}

func (s *SQLStore) GetAttendance(ctx context.Context, showID, name string) (model.Attendance, error) {
	a, err := s.attendance.Get(ctx, showID, name)
	if errors.Is(err, repository.ErrAttendanceNotFound) {
		return model.Attendance{}, ErrNotFound
	}
	return a, err
}

func (s *SQLStore) ListAttendance(ctx context.Context, showID string) ([]model.Attendance, error) {
	return s.attendance.ListByShow(ctx, showID)
}

func (s *SQLStore) ShowIDsFor(ctx context.Context, name string) (map[string]bool, error) {
	return s.attendance.ShowIDsFor(ctx, name)
}

func (s *SQLStore) AddComment(ctx context.Context, cm model.Comment) error {
	return s.comments.Add(ctx, cm)
}

func (s *SQLStore) DeleteComment(ctx context.Context, showID, commentID, author string) error {
	err := s.comments.Delete(ctx, showID, commentID, author)
	switch {
	case errors.Is(err, repository.ErrCommentNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrForbidden):
		return ErrForbidden
	}
	return err
}

func (s *SQLStore) ListComments(ctx context.Context, showID string) ([]model.Comment, error) {
	return s.comments.ListByShow(ctx, showID)
}

func (s *SQLStore) Export(ctx context.Context) (model.PlannerExport, error) {
	attendance, err := s.attendance.ListAll(ctx)
	if err != nil {
		return model.PlannerExport{}, err
	}
	comments, err := s.comments.ListAll(ctx)
	if err != nil {
		return model.PlannerExport{}, err
	}
	return model.PlannerExport{Attendance: attendance, Comments: comments}, nil
}
