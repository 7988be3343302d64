// Comando restock ejecuta una corrida de reposición automática y termina.
// Pensado para un cron externo; con Redis configurado, dos corridas no se solapan.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/reposicion-api/internal/app"
	"github.com/jhoicas/reposicion-api/internal/application/dto"
	"github.com/jhoicas/reposicion-api/internal/domain"
	"github.com/jhoicas/reposicion-api/pkg/config"
	"github.com/jhoicas/reposicion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	// Logs a stderr: stdout queda para el aviso en JSON.
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name + "-restock",
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar servicios")
	}
	defer services.Close()

	res, err := services.AutoRestock.Run(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRestockInProgress) {
			log.Warn().Msg("otra corrida de reposición está en curso")
			return
		}
		log.Error().Err(err).Msg("reposición automática")
		services.Close()
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewRestockResponse(res)); err != nil {
		log.Error().Err(err).Msg("escribir aviso de reposición")
	}
}
