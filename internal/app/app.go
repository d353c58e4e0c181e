package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "modernc.org/sqlite"

	_ "salespipeline/docs"
	"salespipeline/internal/authz"
	"salespipeline/internal/config"
	"salespipeline/internal/dispatch"
	"salespipeline/internal/handlers"
	"salespipeline/internal/notify"
	"salespipeline/internal/pdf"
	"salespipeline/internal/pipeline"
	"salespipeline/internal/repositories"
	"salespipeline/internal/routes"
	"salespipeline/internal/services"
)

// App holds the wired service.
type App struct {
	Config     *config.Config
	DB         *sql.DB
	Engine     *pipeline.Orchestrator
	Leads      *services.LeadService
	WorkOrders services.WorkOrderService
	Router     *gin.Engine
}

// NewEngine builds the orchestrator from the pipeline section.
func NewEngine(cfg *config.Config, opts ...pipeline.Option) (*pipeline.Orchestrator, error) {
	policy, err := cfg.Pipeline.ToPolicy()
	if err != nil {
		return nil, fmt.Errorf("pipeline policy: %w", err)
	}
	return pipeline.NewOrchestrator(policy, opts...)
}

// New opens the database, creates the schema and wires every layer.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	for _, op := range cfg.Auth.Operators {
		if !authz.Known(op.RoleID) {
			return nil, fmt.Errorf("operator %s: unknown role_id %d", op.Email, op.RoleID)
		}
	}

	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(ctx, db, cfg.Database.Driver); err != nil {
		db.Close()
		return nil, err
	}

	// === Repos ===
	leadRepo := repositories.NewLeadRepository(db)
	workOrderRepo := repositories.NewWorkOrderRepository(db)

	// === Dispatch ===
	notifier := buildNotifier(cfg)
	registry, err := dispatch.Uniform(dispatch.NewQueueWorker(workOrderRepo, notifier))
	if err != nil {
		db.Close()
		return nil, err
	}
	dispatcher := dispatch.NewDispatcher(registry)

	// === Services ===
	leadService := services.NewLeadService(leadRepo, engine, dispatcher, notifier)
	workOrderService := services.NewWorkOrderService(workOrderRepo)
	reports := pdf.NewReportGenerator(cfg.Files.RootDir, cfg.Files.FontPath)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, []byte(cfg.Auth.JWTSecret), routes.Handlers{
		Auth:       handlers.NewAuthHandler(cfg.Auth),
		Pipeline:   handlers.NewPipelineHandler(engine),
		Leads:      handlers.NewLeadHandler(leadService, reports),
		WorkOrders: handlers.NewWorkOrderHandler(workOrderService),
		Reports:    handlers.NewReportHandler(leadService),
	})

	return &App{
		Config:     cfg,
		DB:         db,
		Engine:     engine,
		Leads:      leadService,
		WorkOrders: workOrderService,
		Router:     router,
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

// Run serves HTTP until SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("[app] close db: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[app] listening on %s (db=%s)", srv.Addr, cfg.Database.Driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("[app] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	var driver string
	switch cfg.Driver {
	case "postgres":
		driver = "postgres"
	case "sqlite":
		driver = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// buildNotifier enables the channels that are configured. A Telegram bot
// that fails to authenticate is logged and skipped.
func buildNotifier(cfg *config.Config) notify.Notifier {
	var channels notify.Multi
	if cfg.Email.SMTPHost != "" && len(cfg.Email.Recipients) > 0 {
		channels = append(channels, notify.NewEmail(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
			cfg.Email.Recipients,
		))
	}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("[app][tg] disabled: %v", err)
		} else {
			channels = append(channels, tg)
		}
	}
	log.Printf("[app] notification channels: %d", len(channels))
	return channels
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
