package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/repository/base"
	"github.com/google/uuid"
)

// RunRepository история генераций расписаний
type RunRepository struct {
	*base.Repository
}

func NewRunRepository(db base.DB) *RunRepository {
	return &RunRepository{Repository: base.NewRepository(db)}
}

const runColumns = `id, student_id, request, sections, professors, candidates, outcome, dropped, notice, created_at`

func scanRun(row interface{ Scan(dest ...any) error }) (*model.ScheduleRun, error) {
	var (
		run                                     model.ScheduleRun
		request, sections, professors, payloads []byte
		outcome                                 string
	)
	err := row.Scan(
		&run.ID,
		&run.StudentID,
		&request,
		&sections,
		&professors,
		&payloads,
		&outcome,
		&run.Dropped,
		&run.Notice,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Outcome = model.FilterOutcome(outcome)

	if err := json.Unmarshal(request, &run.Request); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if err := json.Unmarshal(sections, &run.Sections); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	if err := json.Unmarshal(professors, &run.Professors); err != nil {
		return nil, fmt.Errorf("decode professors: %w", err)
	}
	if err := json.Unmarshal(payloads, &run.Candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	return &run, nil
}

// Create сохраняет генерацию; ID назначается здесь, если не задан
func (r *RunRepository) Create(ctx context.Context, run *model.ScheduleRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	request, err := json.Marshal(run.Request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	sections, err := json.Marshal(nonNil(run.Sections))
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	professors, err := json.Marshal(nonNil(run.Professors))
	if err != nil {
		return fmt.Errorf("encode professors: %w", err)
	}
	candidates, err := json.Marshal(nonNil(run.Candidates))
	if err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}

	query := `
		INSERT INTO schedule_runs (id, student_id, request, sections, professors, candidates, outcome, dropped, notice)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err = r.QueryRow(
		ctx, query,
		run.ID,
		run.StudentID,
		request,
		sections,
		professors,
		candidates,
		string(run.Outcome),
		run.Dropped,
		run.Notice,
	).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("create schedule run: %w", err)
	}

	return nil
}

// GetByID получает генерацию по ID
func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleRun, error) {
	query := `SELECT ` + runColumns + ` FROM schedule_runs WHERE id = $1`

	run, err := scanRun(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get schedule run: %w", err)
	}
	return run, nil
}

// ListByStudent последние генерации студента, новые первыми
func (r *RunRepository) ListByStudent(ctx context.Context, studentID int64, limit int) ([]*model.ScheduleRun, error) {
	query := `SELECT ` + runColumns + ` FROM schedule_runs WHERE student_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.Query(ctx, query, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list schedule runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.ScheduleRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule runs: %w", err)
	}

	return runs, nil
}

// nonNil чтобы в JSONB попадал [] вместо null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
