package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofish-bot/hostkeeper/config"
	"github.com/gofish-bot/hostkeeper/desktop"
	"github.com/gofish-bot/hostkeeper/log"
	"github.com/gofish-bot/hostkeeper/printer"

	"github.com/urfave/cli"
)

func main() {
	var dir string
	var configPath string
	var dryRun bool
	var verbose bool

	app := cli.NewApp()
	app.Name = "update-wayland"
	app.Usage = "Make Electron and Chromium apps start as native Wayland clients"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "dir",
			Usage:       "Directory holding the desktop entries",
			Value:       desktop.DefaultDir,
			Destination: &dir,
		}, cli.StringFlag{
			Name:        "config",
			Usage:       "YAML file replacing the built-in modes and desktop entries",
			Destination: &configPath,
		}, cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Show what would change without writing",
			Destination: &dryRun,
		}, cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Full debug log",
			Destination: &verbose,
		},
	}

	app.Action = func(c *cli.Context) error {
		log.Setup(verbose)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		p := &desktop.Patcher{Dir: dir, DryRun: dryRun}
		results, err := p.Run(ctx, cfg.Desktop)
		printer.DesktopFiles(os.Stdout, results)
		return err
	}

	err := app.Run(os.Args)
	if err != nil {
		log.L.Fatal(err)
	}
}
