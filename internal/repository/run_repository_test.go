package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow раскладывает значения по указателям Scan
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type fakeDB struct {
	lastArgs []any
	row      fakeRow
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.lastArgs = args
	return db.row
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.lastArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestRunRepository_CreateAndGet(t *testing.T) {
	created := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	db := &fakeDB{row: fakeRow{values: []any{created}}}
	repo := NewRunRepository(db)

	run := &model.ScheduleRun{
		Request:    model.ScheduleRequest{Courses: []string{"MATH 51"}, NumSchedules: 3},
		Candidates: []model.ScheduleCandidate{{Schedule: []model.MeetingEntry{{Summary: "MATH 51-3"}}, Pros: []string{"ok"}}},
		Outcome:    model.FilterOutcomeFiltered,
	}
	require.NoError(t, repo.Create(context.Background(), run))
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, created, run.CreatedAt)

	// sections/professors пишутся как [], а не null
	assert.JSONEq(t, `[]`, string(db.lastArgs[3].([]byte)))
	assert.JSONEq(t, `[]`, string(db.lastArgs[4].([]byte)))
	candidates := db.lastArgs[5].([]byte)

	db.row = fakeRow{values: []any{
		run.ID, (*int64)(nil), db.lastArgs[2].([]byte), []byte(`[]`), []byte(`[null]`), candidates,
		"filtered", 0, "", created,
	}}
	got, err := repo.GetByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, []string{"MATH 51"}, got.Request.Courses)
	assert.Equal(t, model.FilterOutcomeFiltered, got.Outcome)
	require.Len(t, got.Candidates, 1)
	assert.Equal(t, "MATH 51-3", got.Candidates[0].Schedule[0].Summary)
	require.Len(t, got.Professors, 1)
	assert.Nil(t, got.Professors[0])
}

func TestRunRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRunRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})

	got, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRatingRepository_Upsert(t *testing.T) {
	db := &fakeDB{}
	repo := NewRatingRepository(db)

	rating := &model.ProfessorRating{ProfessorInfo: model.ProfessorInfo{FirstName: "Ann"}}
	require.NoError(t, repo.Upsert(context.Background(), "ann schaeffer", rating))

	require.Len(t, db.lastArgs, 3)
	assert.Equal(t, "ann schaeffer", db.lastArgs[0])
	assert.Contains(t, string(db.lastArgs[1].([]byte)), `"firstName":"Ann"`)
	assert.False(t, db.lastArgs[2].(time.Time).IsZero())
}
