package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/authz"
	"github.com/jhoicas/storefront-admin/internal/application/session"
	"github.com/jhoicas/storefront-admin/internal/domain/repository"
	"github.com/jhoicas/storefront-admin/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/storefront-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/storefront-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/storefront-admin/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/storefront-admin/internal/interfaces/http"
	"github.com/jhoicas/storefront-admin/internal/store"
	"github.com/jhoicas/storefront-admin/pkg/config"
	"github.com/jhoicas/storefront-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend de snapshots (carrito y sesión)
	var snapshotRepo repository.SnapshotRepository
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		repo, err := sqlite.NewSnapshotRepository(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.SQLitePath).Msg("abrir SQLite")
		}
		defer repo.Close()
		snapshotRepo = repo
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo, err := postgres.NewSnapshotRepository(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("preparar tabla de snapshots")
		}
		snapshotRepo = repo
	default:
		snapshotRepo = memory.NewSnapshotRepository()
	}
	snapshots := store.NewSnapshots(snapshotRepo, cfg.Storage.PersistTimeout, log.Component("snapshots"))

	locale, err := language.Parse(cfg.Store.QueryLocale)
	if err != nil {
		log.Warn().Err(err).Str("locale", cfg.Store.QueryLocale).Msg("QUERY_LOCALE inválido, se usa vi")
		locale = language.Vietnamese
	}

	metrics := httpRouter.NewMetrics()
	guard := authz.NewGuard(cfg.Store.SuperAdminID, authz.WithLogger(log.Component("authz")))
	domainStore := admin.New(guard,
		admin.WithLogger(log.Component("store")),
		admin.WithRecorder(metrics),
		admin.WithLocale(locale),
	)
	if cfg.Store.SeedDemoData {
		if err := domainStore.Init(admin.DemoSeed(time.Now())); err != nil {
			log.Fatal().Err(err).Msg("cargar datos de demostración")
		}
		log.Info().
			Int("products", domainStore.Products().Len()).
			Int("categories", domainStore.Categories().Len()).
			Int("orders", domainStore.Orders().Len()).
			Msg("datos de demostración cargados")
	}

	cart := store.NewCartStore(snapshots, log.Component("cart"))
	sessions := session.NewManager(snapshots, log.Component("session"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // importación de catálogos XLSX
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:    domainStore,
		Sessions: sessions,
		Cart:     cart,
		Receipts: infrapdf.NewReceiptGenerator(cfg.App.Name),
		Metrics:  metrics,
		Token: httpRouter.TokenConfig{
			Secret:     cfg.JWT.Secret,
			Issuer:     cfg.JWT.Issuer,
			ExpMinutes: cfg.JWT.Expiration,
		},
		Log: log.Component("http"),
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
