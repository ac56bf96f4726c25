// @title                      Reservas de Canchas API
// @version                    1.0
// @description                Registro, login y sesiones con bitácora; canchas con autorización por rol.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/reservas-canchas/docs"
	"github.com/jhoicas/reservas-canchas/internal/application/audit"
	"github.com/jhoicas/reservas-canchas/internal/application/auth"
	"github.com/jhoicas/reservas-canchas/internal/application/session"
	"github.com/jhoicas/reservas-canchas/internal/application/usecase"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
	"github.com/jhoicas/reservas-canchas/internal/infrastructure/cache"
	"github.com/jhoicas/reservas-canchas/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/reservas-canchas/internal/infrastructure/pdf"
	"github.com/jhoicas/reservas-canchas/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/reservas-canchas/internal/interfaces/http"
	"github.com/jhoicas/reservas-canchas/pkg/config"
	"github.com/jhoicas/reservas-canchas/pkg/logger"
	"github.com/jhoicas/reservas-canchas/pkg/metrics"
	"github.com/jhoicas/reservas-canchas/pkg/password"
)

type repositories struct {
	users  repository.UserRepository
	audit  repository.AuditRepository
	courts repository.CourtRepository
	types  repository.CourtTypeRepository
	close  func()
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
		Str("store", cfg.Store.Driver).
		Str("sessions", cfg.Session.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = randomSecret()
		log.Warn().Msg("JWT_SECRET vacío: se generó uno aleatorio, los tokens no sobreviven un reinicio")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	ctx := context.Background()
	repos, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("inicializar almacén")
	}
	defer repos.close()

	sessionStore, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("inicializar almacén de sesiones")
	}
	defer closeSessions()

	ttl := time.Duration(cfg.JWT.Expiration) * time.Minute
	auditSvc := audit.NewService(repos.audit, log.Component("bitacora"), m)
	sessions := session.NewManager(sessionStore, auditSvc, ttl, log.Component("sesion"))

	authUC := auth.NewAuthUseCase(repos.users, sessions, password.NewHasher(0), m, log.Component("auth"), auth.Config{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		DefaultRole: cfg.Auth.DefaultRole,
	})
	courtUC := usecase.NewCourtUseCase(repos.courts, repos.types, auditSvc, log.Component("canchas"))

	// PDF: reporte de la bitácora
	auditExport := audit.NewExportUseCase(auditSvc, infrapdf.NewAuditReportGenerator(time.Local))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Reservas de Canchas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CourtUC:     courtUC,
		UserUC:      usecase.NewUserUseCase(repos.users),
		AuditSvc:    auditSvc,
		AuditExport: auditExport,
		Sessions:    sessions,
		JWTSecret:   cfg.JWT.Secret,
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

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Store.Driver == "memory" {
		types := memory.NewCourtTypeRepository()
		for _, name := range entity.DefaultCourtTypes {
			if _, err := types.Upsert(ctx, name); err != nil {
				return nil, err
			}
		}
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &repositories{
			users:  memory.NewUserRepository(),
			audit:  memory.NewAuditRepository(),
			courts: memory.NewCourtRepository(types),
			types:  types,
			close:  func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	users := postgres.NewRetryingUserRepository(postgres.NewUserRepository(pool), cfg.Store.RetryMax)
	return &repositories{
		users:  users,
		audit:  postgres.NewAuditRepository(pool, postgres.NewTxRunner(pool)),
		courts: postgres.NewCourtRepository(pool),
		types:  postgres.NewCourtTypeRepository(pool),
		close:  pool.Close,
	}, nil
}

func openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Backend != "redis" {
		return cache.NewMemoryStore(time.Duration(cfg.JWT.Expiration) * time.Minute), func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	return cache.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("generar JWT secret: " + err.Error())
	}
	return hex.EncodeToString(b)
}
