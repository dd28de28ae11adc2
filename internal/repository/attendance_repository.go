// Package repository contains data access logic for the planner's shared
// state. This file manages attendance marks: one row per (show, attendee)
// pair carrying the mark's state. Rows are never hard-deleted; the
// "deleted" state acts as a tombstone so that re-adding an attendee walks
// the same toggle cycle the group is used to.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
)

// ErrAttendanceNotFound indicates no mark exists for a (show, attendee) pair.
var ErrAttendanceNotFound = errors.New("attendance not found")

// AttendanceRepo manages persistence for attendance marks.
type AttendanceRepo struct {
	db *sql.DB
}

// NewAttendanceRepo constructs an AttendanceRepo with the given DB handle.
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// Set upserts the mark for a (show, attendee) pair. Last write wins; the
// planner does not attempt to reconcile concurrent edits from different
// devices.
func (r *AttendanceRepo) Set(ctx context.Context, showID, name string, state model.AttendanceState) error {
	const q = `INSERT INTO attendance (show_id, name, state, updated_at)
               VALUES (?, ?, ?, UTC_TIMESTAMP())
               ON DUPLICATE KEY UPDATE state = VALUES(state), updated_at = UTC_TIMESTAMP()`
	_, err := r.db.ExecContext(ctx, q, showID, name, string(state))
	return err
}

// Get returns the mark for a (show, attendee) pair, or ErrAttendanceNotFound.
func (r *AttendanceRepo) Get(ctx context.Context, showID, name string) (model.Attendance, error) {
	const q = `SELECT show_id, name, state, updated_at FROM attendance WHERE show_id = ? AND name = ?`
	var a model.Attendance
	var state string
	var updated time.Time
	err := r.db.QueryRowContext(ctx, q, showID, name).Scan(&a.ShowID, &a.Name, &state, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Attendance{}, ErrAttendanceNotFound
		}
		return model.Attendance{}, err
	}
	a.State = model.AttendanceState(state)
	a.UpdatedAt = updated
	return a, nil
}

// ListByShow returns every non-tombstoned mark on a show, oldest first, so
// the attendee chips render in the order people signed up.
func (r *AttendanceRepo) ListByShow(ctx context.Context, showID string) ([]model.Attendance, error) {
	const q = `SELECT show_id, name, state, updated_at FROM attendance
               WHERE show_id = ? AND state <> 'deleted'
               ORDER BY updated_at ASC, name ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttendance(rows)
}

// ShowIDsFor returns the set of show IDs an attendee holds a live mark on.
// It feeds the "my schedule" filter over the chronological view.
func (r *AttendanceRepo) ShowIDsFor(ctx context.Context, name string) (map[string]bool, error) {
	const q = `SELECT show_id FROM attendance WHERE name = ? AND state <> 'deleted'`
	rows, err := r.db.QueryContext(ctx, q, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListAll returns every live mark grouped by show ID, for the export
// endpoint.
func (r *AttendanceRepo) ListAll(ctx context.Context) (map[string][]model.Attendance, error) {
	const q = `SELECT show_id, name, state, updated_at FROM attendance
               WHERE state <> 'deleted'
               ORDER BY show_id ASC, updated_at ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	marks, err := scanAttendance(rows)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]model.Attendance)
	for _, a := range marks {
		grouped[a.ShowID] = append(grouped[a.ShowID], a)
	}
	return grouped, nil
}

func scanAttendance(rows *sql.Rows) ([]model.Attendance, error) {
	var result []model.Attendance
	for rows.Next() {
		var a model.Attendance
		var state string
		if err := rows.Scan(&a.ShowID, &a.Name, &state, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.State = model.AttendanceState(state)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
