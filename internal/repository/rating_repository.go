package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/repository/base"
)

// RatingRepository кэш рейтингов преподавателей
type RatingRepository struct {
	*base.Repository
}

func NewRatingRepository(db base.DB) *RatingRepository {
	return &RatingRepository{Repository: base.NewRepository(db)}
}

// Get возвращает запись из кэша или nil
func (r *RatingRepository) Get(ctx context.Context, nameKey string) (*model.ProfessorRating, error) {
	query := `SELECT payload, fetched_at FROM professor_ratings WHERE name_key = $1`

	var (
		payload   []byte
		fetchedAt time.Time
	)
	if err := r.QueryRow(ctx, query, nameKey).Scan(&payload, &fetchedAt); err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get professor rating: %w", err)
	}

	var rating model.ProfessorRating
	if err := json.Unmarshal(payload, &rating); err != nil {
		return nil, fmt.Errorf("decode professor rating: %w", err)
	}
	rating.FetchedAt = fetchedAt

	return &rating, nil
}

// Upsert сохраняет или обновляет запись
func (r *RatingRepository) Upsert(ctx context.Context, nameKey string, rating *model.ProfessorRating) error {
	payload, err := json.Marshal(rating)
	if err != nil {
		return fmt.Errorf("encode professor rating: %w", err)
	}

	fetchedAt := rating.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	query := `
		INSERT INTO professor_ratings (name_key, payload, fetched_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name_key) DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at
	`

	if _, err := r.ExecAffected(ctx, query, nameKey, payload, fetchedAt); err != nil {
		return fmt.Errorf("upsert professor rating: %w", err)
	}
	return nil
}
