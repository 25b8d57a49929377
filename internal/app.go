package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"dashboard-service/internal/adapters/coingecko"
	"dashboard-service/internal/adapters/consultation_api_client"
	logger_adapter "dashboard-service/internal/adapters/logger"
	postgres_adapter "dashboard-service/internal/adapters/postgres"
	rabbitmq_adapter "dashboard-service/internal/adapters/rabbitmq"
	"dashboard-service/internal/adapters/rest"
	"dashboard-service/internal/configs"
	"dashboard-service/internal/constants"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/contracts"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"dashboard-service/internal/core/usecase"
	"dashboard-service/internal/core/view"
	fluentlogger "dashboard-service/pkg/fluent_logger"
	"dashboard-service/pkg/postgres"
	"dashboard-service/pkg/rabbitmq/rabbitmq_common"
	"dashboard-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server
	poller    *usecase.DashboardPoller

	dbPool          *pgxpool.Pool
	rabbitManager   *rabbitmq_common.ConnectionManager
	rabbitPublisher *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	baseLogger   port.LoggerPort
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		baseLogger:   baseLogger,
		logger:       appLogger,
	}

	if err := contracts.Load(); err != nil {
		appLogger.Error("Failed to compile event schemas", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to compile event schemas: %w", err)
	}

	// --- 2. ВНЕШНИЕ ИСТОЧНИКИ ---
	marketData, err := coingecko.NewCoinGeckoAdapter(coingecko.Config{
		BaseURL:     appConfig.CoinGecko.URL,
		APIKey:      appConfig.CoinGecko.APIKey,
		Parallelism: appConfig.CoinGecko.Parallelism,
		RandomDelay: appConfig.CoinGecko.RandomDelay,
		Timeout:     appConfig.CoinGecko.Timeout,
	})
	if err != nil {
		appLogger.Error("Failed to create CoinGecko adapter", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to create coingecko adapter: %w", err)
	}

	consultationClient := consultation_api_client.NewClient(appConfig.ConsultationAPI.URL, appConfig.ConsultationAPI.Timeout)

	// Необязательные зависимости остаются nil-интерфейсами, если выключены
	var (
		history            port.TimeSeriesSource
		snapshots          port.SnapshotRepositoryPort
		marketEvents       port.MarketEventsPort
		consultationEvents port.ConsultationEventsPort
	)

	if appConfig.Database.URL != "" {
		dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool

		snapshotRepo, err := postgres_adapter.NewPostgresSnapshotRepository(dbPool)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create snapshot repository: %w", err)
		}
		if err := snapshotRepo.EnsureSchema(context.Background()); err != nil {
			appLogger.Error("Failed to prepare market_snapshots table", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to prepare snapshot schema: %w", err)
		}
		history, snapshots = snapshotRepo, snapshotRepo
		appLogger.Info("Snapshot history enabled (PostgreSQL)", nil)
	} else {
		appLogger.Info("DATABASE_URL is empty, snapshot history disabled", nil)
	}

	if appConfig.RabbitMQ.Enabled {
		rabbitLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
		manager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, rabbitLogger)
		if err != nil {
			appLogger.Error("Failed to connect to RabbitMQ", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		application.rabbitManager = manager

		publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             constants.DashboardExchange,
			ExchangeType:             constants.DashboardExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitLogger,
		}, manager)
		if err != nil {
			appLogger.Error("Failed to create RabbitMQ publisher", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
		}
		application.rabbitPublisher = publisher

		eventsAdapter, err := rabbitmq_adapter.NewEventPublisherAdapter(publisher)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		marketEvents, consultationEvents = eventsAdapter, eventsAdapter
		appLogger.Info("Event publishing enabled (RabbitMQ)", port.Fields{"exchange": constants.DashboardExchange})
	} else {
		appLogger.Info("RabbitMQ is disabled, events will not be published", nil)
	}

	// --- 3. СОСТОЯНИЕ ЭКРАНОВ И USE CASES ---
	dashboardState := view.NewState[domain.DashboardAggregate]()
	assetsState := view.NewState[[]domain.Asset]()

	refreshDashboardUC := usecase.NewRefreshDashboardUseCase(marketData, history, snapshots, marketEvents, dashboardState)
	getDashboardUC := usecase.NewGetDashboardUseCase(dashboardState, refreshDashboardUC, appConfig.Market.MaxAge)
	listAssetsUC := usecase.NewListAssetsUseCase(marketData, assetsState, appConfig.Market.AssetsLimit, appConfig.Market.MaxAge)
	assetDetailUC := usecase.NewGetAssetDetailUseCase(marketData)
	assetChartUC := usecase.NewGetAssetChartUseCase(marketData)

	listConsultationsUC := usecase.NewListConsultationsUseCase(consultationClient)
	getConsultationUC := usecase.NewGetConsultationUseCase(consultationClient)
	updateStatusUC := usecase.NewUpdateConsultationStatusUseCase(consultationClient, consultationEvents)
	updateNotesUC := usecase.NewUpdateConsultationNotesUseCase(consultationClient, consultationEvents)
	sendMessageUC := usecase.NewSendAdminMessageUseCase(consultationClient, consultationEvents)
	deleteUC := usecase.NewDeleteConsultationUseCase(consultationClient, consultationEvents)

	application.poller = usecase.NewDashboardPoller(refreshDashboardUC, appConfig.Market.PollInterval, baseLogger)

	// --- 4. REST API ---
	marketHandler := rest.NewMarketHandler(getDashboardUC, refreshDashboardUC, listAssetsUC, assetDetailUC, assetChartUC)
	consultationHandler := rest.NewConsultationHandler(listConsultationsUC, getConsultationUC,
		updateStatusUC, updateNotesUC, sendMessageUC, deleteUC)
	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Server.Port,
		AllowedOrigins: appConfig.Server.CORSAllowedOrigins,
	}, marketHandler, consultationHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.poller.Stop()
		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	pollerCtx := contextkeys.ContextWithLogger(appCtx, a.baseLogger.WithFields(port.Fields{"component": "DashboardPoller"}))
	a.poller.Start(pollerCtx)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		return err
	}
	return nil
}

// closeResources закрывает подключения в порядке, обратном созданию.
func (a *App) closeResources() {
	if a.rabbitPublisher != nil {
		if err := a.rabbitPublisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
	}
	if a.rabbitManager != nil {
		if err := a.rabbitManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent уже может быть недоступен, поэтому только stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
