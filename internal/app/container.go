package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/advisor"
	"github.com/Freeeeeet/schedule_builder/internal/calendar"
	"github.com/Freeeeeet/schedule_builder/internal/catalog"
	"github.com/Freeeeeet/schedule_builder/internal/config"
	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/ratings"
	"github.com/Freeeeeet/schedule_builder/internal/repository"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
	"github.com/Freeeeeet/schedule_builder/internal/service"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// memoryRunLimit сколько генераций держать в памяти без БД
const memoryRunLimit = 200

// Container собранные зависимости процесса
type Container struct {
	Config    *config.Config
	Pool      *pgxpool.Pool // nil без DB_DSN
	Catalog   *catalog.Catalog
	Planner   *service.PlannerService
	Calendar  *service.CalendarService // nil, если Google Calendar не настроен
	Students  *service.StudentService  // nil без БД
	Scheduler *Scheduler
	Quarters  []model.Quarter
	Location  *time.Location
}

// Build собирает зависимости. Без DB_DSN генерации хранятся в памяти, а кэш рейтингов отключён.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Location: cfg.Location()}

	quarters, err := loadQuarters(cfg)
	if err != nil {
		return nil, err
	}
	c.Quarters = quarters

	filter, err := newFilter(cfg, logger)
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	logger.Info("AWS configured", zap.String("region", awsCfg.Region))

	if cfg.DBDSN != "" {
		pool, err := openDatabase(ctx, cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
	}

	c.Catalog = catalog.New(
		catalog.NewS3Source(s3.NewFromConfig(awsCfg), cfg.CatalogBucket, cfg.CatalogKey),
		logger.Named("catalog"),
	)
	c.Scheduler = NewScheduler(c.Catalog, cfg.CatalogRefreshCron, logger.Named("scheduler"))

	completer := advisor.NewBedrockCompleter(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID)
	adv := advisor.New(completer, logger.Named("advisor"))

	var lookup ratings.Looker = ratings.NewClient(cfg.RMPBaseURL, cfg.RMPSchoolID)
	var runs service.RunStore
	var exports service.ExportStore
	if c.Pool != nil {
		lookup = ratings.NewCachedLookup(lookup, repository.NewRatingRepository(c.Pool), cfg.RatingCacheTTL, logger.Named("ratings"))
		runs = repository.NewRunRepository(c.Pool)
		exports = repository.NewExportRepository(c.Pool)
		c.Students = service.NewStudentService(repository.NewStudentRepository(c.Pool), logger.Named("students"))
	} else {
		logger.Warn("DB_DSN not set, schedule runs are kept in memory")
		runs = service.NewMemoryRunStore(memoryRunLimit)
	}

	c.Planner = service.NewPlannerService(c.Catalog, adv, lookup, runs, filter, logger.Named("planner"))

	google, err := calendar.NewGoogleClient(ctx, cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, c.Location, logger.Named("gcal"))
	if err != nil {
		logger.Warn("Google Calendar disabled", zap.Error(err))
	} else {
		c.Calendar = service.NewCalendarService(google, c.Planner, exports, logger.Named("calendar"))
	}

	return c, nil
}

// Close освобождает ресурсы контейнера
func (c *Container) Close() {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

func openDatabase(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	migrator, err := NewMigrator(pool, logger.Named("migrator"))
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func loadQuarters(cfg *config.Config) ([]model.Quarter, error) {
	if cfg.QuartersFile == "" {
		return config.DefaultQuarters(), nil
	}
	quarters, err := config.LoadQuarters(cfg.QuartersFile)
	if err != nil {
		return nil, fmt.Errorf("load quarters: %w", err)
	}
	return quarters, nil
}

func newFilter(cfg *config.Config, logger *zap.Logger) (*schedule.Filter, error) {
	mode, err := schedule.ParseMode(cfg.OverlapMode)
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_OVERLAP_MODE: %w", err)
	}
	return schedule.NewFilter(mode, logger.Named("filter")), nil
}
