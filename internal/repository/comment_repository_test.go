package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-schedule-planner/internal/model"
)

func TestCommentAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 6, 5, 21, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO comments").
		WithArgs("c-1", "show_1", "Jess", "front left, come find us", created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewCommentRepo(db)
	err = repo.Add(context.Background(), model.Comment{
		ID: "c-1", ShowID: "show_1", Author: "Jess",
		Text: "front left, come find us", CreatedAt: created,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDeleteWrongAuthor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT author FROM comments").
		WithArgs("c-1", "show_1").
		WillReturnRows(sqlmock.NewRows([]string{"author"}).AddRow("Theo"))

	repo := NewCommentRepo(db)
	err = repo.Delete(context.Background(), "show_1", "c-1", "Jess")
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT author FROM comments").
		WithArgs("c-404", "show_1").
		WillReturnRows(sqlmock.NewRows([]string{"author"}))

	repo := NewCommentRepo(db)
	err = repo.Delete(context.Background(), "show_1", "c-404", "Jess")
	assert.ErrorIs(t, err, ErrCommentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentDeleteByAuthor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT author FROM comments").
		WithArgs("c-1", "show_1").
		WillReturnRows(sqlmock.NewRows([]string{"author"}).AddRow("Jess"))
	mock.ExpectExec("DELETE FROM comments").
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewCommentRepo(db)
	err = repo.Delete(context.Background(), "show_1", "c-1", "Jess")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentListByShow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "show_id", "author", "text", "created_at"}).
		AddRow("c-1", "show_1", "Jess", "first", now.Add(-time.Minute)).
		AddRow("c-2", "show_1", "Theo", "second", now)

	mock.ExpectQuery("SELECT id, show_id, author, text, created_at FROM comments").
		WithArgs("show_1").
		WillReturnRows(rows)

	repo := NewCommentRepo(db)
	comments, err := repo.ListByShow(context.Background(), "show_1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "Theo", comments[1].Author)
	assert.NoError(t, mock.ExpectationsWereMet())
}
