package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/Stockify-api/internal/application/auth"
	"github.com/jhoicas/Stockify-api/internal/application/catalog"
	"github.com/jhoicas/Stockify-api/internal/application/identity"
	"github.com/jhoicas/Stockify-api/internal/application/ports"
	"github.com/jhoicas/Stockify-api/internal/application/usecase"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Stockify-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/tokenstore"
	httpRouter "github.com/jhoicas/Stockify-api/internal/interfaces/http"
	"github.com/jhoicas/Stockify-api/pkg/config"
	"github.com/jhoicas/Stockify-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const swaggerFile = "./docs/swagger.json"

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", postgres.RedactedDSN(cfg.DB)).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Lista de revocación: Redis si está configurado, si no en memoria (una sola réplica).
	var (
		revocations ports.TokenRevocationStore
		pingRedis   func(context.Context) error
	)
	if cfg.Redis.URL != "" {
		rs, err := tokenstore.NewRedisStore(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rs.Close()
		revocations, pingRedis = rs, rs.Ping
	} else {
		log.Warn().Msg("REDIS_URL vacío: revocación de tokens en memoria")
		revocations = tokenstore.NewMemoryStore()
	}

	// Notificaciones fuera de la petición: SMTP si hay host, si no al log.
	var sink ports.Notifier = notify.NewLogNotifier(log)
	if cfg.SMTP.Enabled() {
		sink = notify.NewMailNotifier(cfg.SMTP)
	}
	notifier := notify.NewAsyncNotifier(sink, 64)
	defer notifier.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	rangeRepo := postgres.NewRangeRepository(pool)
	familyRepo := postgres.NewFamilyRepository(pool)
	packagingRepo := postgres.NewPackagingRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, revocations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	provisioning := identity.NewProvisioningService(userRepo, txRunner)
	profiles := identity.NewProfileService(userRepo, profileRepo, txRunner, notifier)
	userUC := usecase.NewUserUseCase(userRepo)
	hierarchyUC := catalog.NewHierarchyUseCase(rangeRepo, familyRepo, packagingRepo)
	productUC := catalog.NewProductUseCase(productRepo, txRunner)
	references := catalog.NewReferenceService(rangeRepo, familyRepo, packagingRepo)
	sheets := catalog.NewSheetUseCase(productRepo, rangeRepo, familyRepo, packagingRepo,
		infrapdf.NewProductSheetGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	// Errores 5xx a Sentry si hay DSN.
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			EnableTracing:    true,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			Environment:      cfg.App.Env,
		}); err != nil {
			log.Error().Err(err).Msg("inicializar sentry")
		} else {
			defer sentry.Flush(2 * time.Second)
			app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
		}
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stockify API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		hctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		checks := fiber.Map{"postgres": "ok"}
		status := fiber.StatusOK
		if err := pool.Ping(hctx); err != nil {
			checks["postgres"], status = err.Error(), fiber.StatusServiceUnavailable
		}
		if pingRedis != nil {
			checks["redis"] = "ok"
			if err := pingRedis(hctx); err != nil {
				checks["redis"], status = err.Error(), fiber.StatusServiceUnavailable
			}
		}
		return c.Status(status).JSON(fiber.Map{"status": checks, "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Provisioning: provisioning,
		Profiles:     profiles,
		UserUC:       userUC,
		HierarchyUC:  hierarchyUC,
		ProductUC:    productUC,
		References:   references,
		Sheets:       sheets,
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
