// migrate aplica o revierte el esquema embebido.
//
// Uso: go run ./cmd/migrate [up|down|version|force N]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/navbahor-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/navbahor-erp/pkg/config"
	"github.com/jhoicas/navbahor-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("preparar migraciones")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var (
			v     uint
			dirty bool
		)
		if v, dirty, err = m.Version(); err == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
	case "force":
		if len(os.Args) < 3 {
			log.Fatal().Msg("uso: migrate force <versión>")
		}
		var n int
		if n, err = strconv.Atoi(os.Args[2]); err == nil {
			err = m.Force(n)
		}
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido (up, down, version, force)")
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración")
	}
}
