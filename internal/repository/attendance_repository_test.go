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

func TestAttendanceSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO attendance").
		WithArgs("show_1_water_alpha_900pm", "Jess", "must-see").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewAttendanceRepo(db)
	err = repo.Set(context.Background(), "show_1_water_alpha_900pm", "Jess", model.StateMustSee)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT show_id, name, state, updated_at FROM attendance").
		WithArgs("show_x", "Jess").
		WillReturnRows(sqlmock.NewRows([]string{"show_id", "name", "state", "updated_at"}))

	repo := NewAttendanceRepo(db)
	_, err = repo.Get(context.Background(), "show_x", "Jess")
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceListByShow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"show_id", "name", "state", "updated_at"}).
		AddRow("show_1", "Jess", "normal", now).
		AddRow("show_1", "Theo", "must-see", now)

	mock.ExpectQuery("SELECT show_id, name, state, updated_at FROM attendance").
		WithArgs("show_1").
		WillReturnRows(rows)

	repo := NewAttendanceRepo(db)
	marks, err := repo.ListByShow(context.Background(), "show_1")
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Equal(t, "Jess", marks[0].Name)
	assert.Equal(t, model.StateNormal, marks[0].State)
	assert.Equal(t, model.StateMustSee, marks[1].State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceShowIDsFor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"show_id"}).
		AddRow("show_1").
		AddRow("show_2")

	mock.ExpectQuery("SELECT show_id FROM attendance").
		WithArgs("Jess").
		WillReturnRows(rows)

	repo := NewAttendanceRepo(db)
	ids, err := repo.ShowIDsFor(context.Background(), "Jess")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"show_1": true, "show_2": true}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
