package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/internal/application/inventory"
	"github.com/jhoicas/LogFlow-api/internal/application/orders"
	"github.com/jhoicas/LogFlow-api/internal/application/usecase"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
	"github.com/jhoicas/LogFlow-api/internal/infrastructure/filestore"
	"github.com/jhoicas/LogFlow-api/internal/infrastructure/memory"
	"github.com/jhoicas/LogFlow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/LogFlow-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/LogFlow-api/internal/interfaces/http"
	"github.com/jhoicas/LogFlow-api/pkg/config"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

// backend agrupa lo que depende del driver de base de datos.
type backend struct {
	batchTx       importer.TxRunner
	movementTx    inventory.TxRunner
	orderTx       orders.TxRunner
	categories    repository.CategoryRepository
	products      repository.ProductRepository
	movements     repository.StockMovementRepository
	clients       repository.ClientRepository
	orders        repository.OrderRepository
	statusHistory repository.OrderStatusHistoryRepository
	imports       repository.ImportBatchRepository
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("storage_driver", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	db, err := openBackend(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer db.close()

	store, err := openFileStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de archivos")
	}

	importUC := importer.NewUseCase(
		store,
		spreadsheet.NewExcelDecoder(),
		db.batchTx,
		db.imports,
		log.Component("importer"),
		cfg.Storage.KeyPrefix,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LogFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Importer:         importUC,
		ProductUC:        usecase.NewProductUseCase(db.products, db.movements),
		CategoryUC:       usecase.NewCategoryUseCase(db.categories),
		ClientUC:         usecase.NewClientUseCase(db.clients),
		OrderUC:          usecase.NewOrderUseCase(db.orders, db.statusHistory),
		OrderStatus:      orders.NewUpdateStatusUseCase(db.orderTx),
		RegisterMovement: inventory.NewRegisterMovementUseCase(db.movementTx),
		Replenishment:    inventory.NewReplenishmentUseCase(db.products),
		JWTSecret:        cfg.JWT.Secret,
		Log:              log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openBackend(ctx context.Context, cfg config.DBConfig) (*backend, error) {
	if cfg.Driver == "memory" {
		s := memory.NewStore()
		return &backend{
			batchTx:       s,
			movementTx:    s,
			orderTx:       s,
			categories:    s.Categories(),
			products:      s.Products(),
			movements:     s.Movements(),
			clients:       s.Clients(),
			orders:        s.Orders(),
			statusHistory: s.OrderHistory(),
			imports:       s.ImportBatches(),
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tx := postgres.NewTxRunner(pool)
	return &backend{
		batchTx:       tx,
		movementTx:    tx,
		orderTx:       tx,
		categories:    postgres.NewCategoryRepository(pool),
		products:      postgres.NewProductRepository(pool),
		movements:     postgres.NewStockMovementRepository(pool),
		clients:       postgres.NewClientRepository(pool),
		orders:        postgres.NewOrderRepository(pool),
		statusHistory: postgres.NewOrderStatusHistoryRepository(pool),
		imports:       postgres.NewImportBatchRepository(pool),
		close:         pool.Close,
	}, nil
}

func openFileStore(ctx context.Context, cfg config.StorageConfig) (importer.FileStore, error) {
	switch cfg.Driver {
	case "memory":
		return filestore.NewMemoryStore(), nil
	case "s3":
		return filestore.NewS3Store(ctx, cfg)
	default:
		return filestore.NewLocalStore(cfg.LocalRoot)
	}
}
