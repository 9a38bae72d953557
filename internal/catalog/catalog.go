package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"go.uber.org/zap"
)

// Catalog кэширует последнюю успешно загруженную выгрузку
type Catalog struct {
	source Source
	logger *zap.Logger

	mu       sync.RWMutex
	sections []model.CourseSection
	loadedAt time.Time
}

func New(source Source, logger *zap.Logger) *Catalog {
	return &Catalog{source: source, logger: logger}
}

// Refresh заново скачивает и разбирает выгрузку. При ошибке кэш не трогается.
func (c *Catalog) Refresh(ctx context.Context) error {
	body, err := c.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}
	defer body.Close()

	sections, err := ReadSections(body)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	c.mu.Lock()
	c.sections = sections
	c.loadedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("Course catalog loaded", zap.Int("sections", len(sections)))
	return nil
}

// Sections возвращает секции, загружая каталог при первом обращении
func (c *Catalog) Sections(ctx context.Context) ([]model.CourseSection, error) {
	c.mu.RLock()
	loaded := !c.loadedAt.IsZero()
	sections := c.sections
	c.mu.RUnlock()

	if loaded {
		return sections, nil
	}

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sections, nil
}

// LoadedAt время последней успешной загрузки
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
