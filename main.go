package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"hotelorders/commands"
	"hotelorders/config"
	"hotelorders/handlers"
	"hotelorders/services"
)

func main() {
	app := pocketbase.New()

	var configPath string
	app.RootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv(config.EnvPrefix+"CONFIG"),
		"TOML or YAML config file")

	rt := newWiring(app, &configPath)
	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		rt.close()
		return e.Next()
	})

	app.RootCmd.AddCommand(commands.NewReportCommand(func(ctx context.Context) (*services.Generator, error) {
		if err := rt.load(ctx); err != nil {
			return nil, err
		}
		return rt.gen, nil
	}))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if err := rt.load(context.Background()); err != nil {
			return err
		}
		rt.seedDemo(time.Now())
		handlers.Register(se, handlers.Deps{
			Generator:      rt.gen,
			SecondaryLabel: rt.cfg.Render.SecondaryLabel,
			PreviewRows:    rt.cfg.Server.PreviewRows,
			Logger:         rt.logger.Named("http"),
		}, rt.cfg.Server.AccessCode)

		rt.logger.Info("report site ready",
			zap.String("source", rt.cfg.Source.Kind),
			zap.Bool("access_gate", rt.cfg.Server.AccessCode != ""),
		)
		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
