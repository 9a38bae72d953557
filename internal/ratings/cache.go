package ratings

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"go.uber.org/zap"
)

// Looker возвращает рейтинг преподавателя по полному имени
type Looker interface {
	Lookup(ctx context.Context, fullName string) (*model.ProfessorRating, error)
}

// Store хранилище закэшированных рейтингов
type Store interface {
	Get(ctx context.Context, nameKey string) (*model.ProfessorRating, error)
	Upsert(ctx context.Context, nameKey string, rating *model.ProfessorRating) error
}

// CachedLookup ходит в RateMyProfessors только при промахе или устаревшей записи
type CachedLookup struct {
	next   Looker
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewCachedLookup(next Looker, store Store, ttl time.Duration, logger *zap.Logger) *CachedLookup {
	return &CachedLookup{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

func (c *CachedLookup) Lookup(ctx context.Context, fullName string) (*model.ProfessorRating, error) {
	key := NameKey(fullName)

	cached, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Failed to read rating cache", zap.String("professor", key), zap.Error(err))
	}
	if cached != nil && c.now().Sub(cached.FetchedAt) < c.ttl {
		return cached, nil
	}

	rating, err := c.next.Lookup(ctx, fullName)
	if err != nil {
		if cached != nil && !errors.Is(err, ErrNotFound) {
			c.logger.Warn("Serving stale professor rating", zap.String("professor", key), zap.Error(err))
			return cached, nil
		}
		return nil, err
	}

	if err := c.store.Upsert(ctx, key, rating); err != nil {
		c.logger.Warn("Failed to cache professor rating", zap.String("professor", key), zap.Error(err))
	}

	return rating, nil
}
