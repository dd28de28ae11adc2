// Package repository contains data access logic for the planner's shared
// state. This file manages the per-show comment threads. Comments are a
// flat list ordered by creation time; deleting is restricted to the
// comment's author.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
)

// ErrCommentNotFound indicates the referenced comment does not exist.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepo manages persistence for show comments.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo constructs a CommentRepo with the given DB handle.
func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// Add inserts a comment. The caller supplies the UUID and timestamp so the
// local fallback store can produce identical records.
func (r *CommentRepo) Add(ctx context.Context, cm model.Comment) error {
	const q = `INSERT INTO comments (id, show_id, author, text, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, cm.ID, cm.ShowID, cm.Author, cm.Text, cm.CreatedAt.UTC())
	return err
}

// Delete removes a comment if it exists on the given show and was written
// by the given author. It returns ErrCommentNotFound when no such comment
// exists and ErrForbidden when it exists but belongs to someone else.
func (r *CommentRepo) Delete(ctx context.Context, showID, commentID, author string) error {
	var dbAuthor string
	err := r.db.QueryRowContext(ctx,
		`SELECT author FROM comments WHERE id = ? AND show_id = ?`, commentID, showID,
	).Scan(&dbAuthor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCommentNotFound
		}
		return err
	}
	if dbAuthor != author {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, commentID)
	return err
}

// ListByShow returns a show's comments oldest first.
func (r *CommentRepo) ListByShow(ctx context.Context, showID string) ([]model.Comment, error) {
	const q = `SELECT id, show_id, author, text, created_at FROM comments
               WHERE show_id = ? ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

// ListAll returns every comment grouped by show ID, for the export
// endpoint.
func (r *CommentRepo) ListAll(ctx context.Context) (map[string][]model.Comment, error) {
	const q = `SELECT id, show_id, author, text, created_at FROM comments
               ORDER BY show_id ASC, created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	comments, err := scanComments(rows)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]model.Comment)
	for _, cm := range comments {
		grouped[cm.ShowID] = append(grouped[cm.ShowID], cm)
	}
	return grouped, nil
}

func scanComments(rows *sql.Rows) ([]model.Comment, error) {
	var result []model.Comment
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(&cm.ID, &cm.ShowID, &cm.Author, &cm.Text, &cm.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
