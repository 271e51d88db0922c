package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flowhr/flowhr/internal"
	"github.com/flowhr/flowhr/internal/auth"
	"github.com/flowhr/flowhr/internal/blocklist"
	blocklistpg "github.com/flowhr/flowhr/internal/blocklist/postgres"
	"github.com/flowhr/flowhr/internal/message"
	messagepg "github.com/flowhr/flowhr/internal/message/postgres"
	"github.com/flowhr/flowhr/internal/payment"
	paymentpg "github.com/flowhr/flowhr/internal/payment/postgres"
	"github.com/flowhr/flowhr/internal/paymentgateway"
	"github.com/flowhr/flowhr/internal/testimonial"
	testimonialpg "github.com/flowhr/flowhr/internal/testimonial/postgres"
	"github.com/flowhr/flowhr/internal/transport/rest"
	"github.com/flowhr/flowhr/internal/user"
	userpg "github.com/flowhr/flowhr/internal/user/postgres"
	"github.com/flowhr/flowhr/internal/worksheet"
	worksheetpg "github.com/flowhr/flowhr/internal/worksheet/postgres"
	"github.com/flowhr/flowhr/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

// intentGateway adapts the payment gateway client to the payment
// service, which only needs the client secret back.
type intentGateway struct {
	client *paymentgateway.Client
}

func (g *intentGateway) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	intent, err := g.client.CreateIntent(ctx, amountCents)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Server.Env, config.Logging.Level)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	production := config.Server.IsProduction()

	validity := config.Security.TokenDuration
	if validity <= 0 {
		validity = internal.DefaultTokenDuration
	}

	// Block list sits under both token issuance and registration
	blocklistRepo := blocklistpg.NewBlocklistRepository(db)
	blocklistService := blocklist.NewService(blocklistRepo, appLogger)
	blocklistHandler := blocklist.NewHandler(blocklistService)

	userRepo := userpg.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, blocklistService, config.Registration.RejectFired, appLogger)
	userHandler := user.NewHandler(userService)

	authService := auth.NewService(config.Security.TokenSecret, validity)
	authHandler := auth.NewHandler(authService, blocklistService, production)
	guard := auth.NewGuard(userService, appLogger)

	gatewayClient := paymentgateway.NewClient(paymentgateway.Config{
		APIURL:  config.Payment.APIURL,
		APIKey:  config.Payment.APIKey,
		Timeout: config.Payment.Timeout,
	}, appLogger)

	paymentRepo := paymentpg.NewPaymentRepository(gormDB)
	paymentService := payment.NewService(paymentRepo, &intentGateway{client: gatewayClient}, appLogger)
	paymentHandler := payment.NewHandler(paymentService)

	worksheetRepo := worksheetpg.NewWorksheetRepository(gormDB)
	worksheetService := worksheet.NewService(worksheetRepo, appLogger)
	worksheetHandler := worksheet.NewHandler(worksheetService)

	messageRepo := messagepg.NewMessageRepository(gormDB)
	messageService := message.NewService(messageRepo, appLogger)
	messageHandler := message.NewHandler(messageService)

	testimonialRepo := testimonialpg.NewTestimonialRepository(gormDB)
	testimonialService := testimonial.NewService(testimonialRepo, appLogger)
	testimonialHandler := testimonial.NewHandler(testimonialService)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Auth:        authHandler,
			Guard:       guard,
			User:        userHandler,
			Blocklist:   blocklistHandler,
			Payment:     paymentHandler,
			Worksheet:   worksheetHandler,
			Message:     messageHandler,
			Testimonial: testimonialHandler,
		},
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
