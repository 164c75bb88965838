// migrate aplica o revierte las migraciones SQL embebidas en el paquete postgres.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Sin argumento ejecuta "up". La conexión sale de DATABASE_URL o DB_* (ver pkg/config).
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/LogFlow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/LogFlow-api/pkg/config"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migrador")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, verr := m.Version()
		if verr == nil {
			fmt.Printf("versión %d (dirty=%t)\n", version, dirty)
		}
		err = verr
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q (use up, down o version)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración")
		os.Exit(1)
	}
}
