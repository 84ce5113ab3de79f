package main

import (
	"os"
	"time"

	"github.com/corail-counting/corail/pkg/api"
	"github.com/corail-counting/corail/pkg/database"
	"github.com/corail-counting/corail/pkg/dbwatch"
	"github.com/corail-counting/corail/pkg/events"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("CORAIL_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("CORAIL_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	app := &cli.App{
		Name:        "corail",
		Description: "Single binary of truth for Corail - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			dbwatch.RegisterCLI(),
			events.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
