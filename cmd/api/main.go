package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/clientes-api/internal/application/usecase"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
	"github.com/jhoicas/clientes-api/internal/infrastructure/memory"
	"github.com/jhoicas/clientes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/clientes-api/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/clientes-api/internal/interfaces/http"
	"github.com/jhoicas/clientes-api/pkg/config"
	"github.com/jhoicas/clientes-api/pkg/logger"

	_ "github.com/jhoicas/clientes-api/docs"
)

// store agrupa el repositorio elegido, su verificación de salud y el cierre.
type store struct {
	repo   repository.CustomerRepository
	pinger repository.Pinger
	close  func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión al store")
	}
	defer st.close()

	customerUC := usecase.NewCustomerUseCase(st.repo, log)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:        cfg.App.Name,
		CustomerUC:     customerUC,
		Pinger:         st.pinger,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clientes API",
	}))

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

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := sqlite.CreateSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		repo := sqlite.NewCustomerRepository(db)
		return &store{repo: repo, pinger: repo, close: func() { _ = db.Close() }}, nil
	case config.DriverMemory:
		repo := memory.NewCustomerRepository()
		return &store{repo: repo, pinger: repo, close: func() {}}, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &store{repo: postgres.NewCustomerRepository(pool), pinger: pool, close: pool.Close}, nil
	}
}
