package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/naimp074/stock1/internal/config"
	"github.com/naimp074/stock1/internal/infra"
	"github.com/naimp074/stock1/internal/repository"
	"github.com/naimp074/stock1/internal/router"
	"github.com/naimp074/stock1/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}

	// JSON a stderr en producción; consola legible en desarrollo.
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("sin conexión a postgres")
	}
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("sin conexión a redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Los workers se arman acá, en la raíz de composición, porque necesitan
	// la misma infraestructura que el router (repos, mailer, dispatcher).
	dispatcher := worker.NewDispatcher(rdb)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		Factura: worker.NewFacturaWorker(
			repository.NewVentaRepository(db),
			dispatcher,
			cfg.PDFStoragePath,
			cfg.NombreNegocio,
		),
		Email: worker.NewEmailWorker(infra.NewMailer(cfg)),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(cfg, db, rdb, dispatcher),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("backend de stock escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("el servidor HTTP se cayó")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("apagando el servidor")
	apagado, cancelarApagado := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelarApagado()
	if err := srv.Shutdown(apagado); err != nil {
		log.Fatal().Err(err).Msg("apagado forzado")
	}
	log.Info().Msg("servidor detenido")
}
