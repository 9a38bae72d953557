package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/repository/base"
)

// ExportRepository журнал выгрузок в Google Calendar
type ExportRepository struct {
	*base.Repository
}

func NewExportRepository(db base.DB) *ExportRepository {
	return &ExportRepository{Repository: base.NewRepository(db)}
}

// Create сохраняет запись о выгрузке
func (r *ExportRepository) Create(ctx context.Context, e *model.CalendarExport) error {
	query := `
		INSERT INTO calendar_exports (run_id, candidate_index, calendar_id, event_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, e.RunID, e.CandidateIndex, e.CalendarID, e.EventCount).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create calendar export: %w", err)
	}
	return nil
}
