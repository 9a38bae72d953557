package service

import (
	"context"
	"sort"
	"sync"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/google/uuid"
)

// RunStore хранилище генераций расписаний
type RunStore interface {
	Create(ctx context.Context, run *model.ScheduleRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleRun, error)
	ListByStudent(ctx context.Context, studentID int64, limit int) ([]*model.ScheduleRun, error)
}

// MemoryRunStore держит последние limit генераций в памяти, когда БД не настроена
type MemoryRunStore struct {
	mu    sync.RWMutex
	limit int
	runs  map[uuid.UUID]*model.ScheduleRun
	order []uuid.UUID
}

func NewMemoryRunStore(limit int) *MemoryRunStore {
	if limit <= 0 {
		limit = 100
	}
	return &MemoryRunStore{limit: limit, runs: make(map[uuid.UUID]*model.ScheduleRun)}
}

func (s *MemoryRunStore) Create(ctx context.Context, run *model.ScheduleRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; !ok {
		s.order = append(s.order, run.ID)
	}
	s.runs[run.ID] = run

	for len(s.order) > s.limit {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
	return nil
}

func (s *MemoryRunStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[id], nil
}

func (s *MemoryRunStore) ListByStudent(ctx context.Context, studentID int64, limit int) ([]*model.ScheduleRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.ScheduleRun
	for _, run := range s.runs {
		if run.StudentID != nil && *run.StudentID == studentID {
			out = append(out, run)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
