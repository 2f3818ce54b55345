package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/welovepdf/pdfconv/internal/analyzer"
	"github.com/welovepdf/pdfconv/internal/config"
	"github.com/welovepdf/pdfconv/internal/filex"
	"github.com/welovepdf/pdfconv/internal/logging"
	"github.com/welovepdf/pdfconv/internal/mockgen"
	"github.com/welovepdf/pdfconv/internal/repositories/kv"
	"github.com/welovepdf/pdfconv/internal/services"
	"github.com/welovepdf/pdfconv/internal/storage"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	workflow *services.Workflow
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewDefault()

	for _, dir := range []string{c.OutputDir, c.DownloadDir} {
		if _, err := filex.EnsureDir(dir); err != nil {
			log.Printf("error preparing directory %s: %s", dir, err.Error())
			return nil, err
		}
	}

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	repo := kv.NewSQLiteRepository(db)
	cache := services.NewCacheService(repo, logger)
	quota := services.NewQuotaService(db, c.DailyLimit, logger)
	generator := mockgen.NewFileGenerator(c.OutputDir)
	orch := services.NewOrchestrator(generator, logger, services.OrchestratorOptions{
		StepDelay:        c.StepDelay,
		FailureRate:      c.FailureRate,
		RetryFailureRate: c.RetryFailureRate,
	})
	downloads := services.NewDownloadService(c.DownloadDir, c.DownloadStagger, logger)

	workflow := services.NewWorkflow(cache, quota, orch, downloads, analyzer.New(), generator, repo, logger)
	workflow.Rehydrate(ctx)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		workflow: workflow,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()
	a.Root(ctx)
}
