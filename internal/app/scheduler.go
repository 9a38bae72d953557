package app

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CatalogRefresher перезагружает каталог курсов
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	catalog CatalogRefresher
	spec    string
	logger  *zap.Logger
	cron    *cron.Cron
}

// NewScheduler создаёт новый планировщик; spec: cron-выражение обновления каталога
func NewScheduler(catalog CatalogRefresher, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		catalog: catalog,
		spec:    spec,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("Starting background scheduler", zap.String("catalog_refresh", s.spec))

	if _, err := s.cron.AddFunc(s.spec, func() { s.refreshCatalog(ctx) }); err != nil {
		return fmt.Errorf("add catalog refresh job: %w", err)
	}

	// Первый запуск сразу при старте
	go s.refreshCatalog(ctx)

	s.cron.Start()
	return nil
}

// Stop останавливает фоновые задачи и ждёт завершения текущих
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshCatalog(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	s.logger.Info("Refreshing course catalog")

	if err := s.catalog.Refresh(ctx); err != nil {
		s.logger.Error("Failed to refresh course catalog", zap.Error(err))
		return
	}

	s.logger.Info("Course catalog refreshed")
}
