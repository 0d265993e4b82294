package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofish-bot/hostkeeper/config"
	"github.com/gofish-bot/hostkeeper/githubrelease"
	"github.com/gofish-bot/hostkeeper/localversion"
	"github.com/gofish-bot/hostkeeper/log"
	"github.com/gofish-bot/hostkeeper/models"
	"github.com/gofish-bot/hostkeeper/notify"
	"github.com/gofish-bot/hostkeeper/printer"
	"github.com/gofish-bot/hostkeeper/updater"

	"github.com/urfave/cli"
)

func main() {

	var appName string
	var configPath string
	var scriptDir string
	var envFile string
	var force bool
	var dryRun bool
	var verbose bool

	app := cli.NewApp()
	app.Name = "hostkeeper"
	app.Usage = "Update a self-hosted app when GitHub publishes a new release"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "app, a",
			Usage:       "App to check (gitea, beszel)",
			Value:       "gitea",
			Destination: &appName,
		}, cli.BoolFlag{
			Name:        "force, f",
			Usage:       "Force update even if versions match",
			Destination: &force,
		}, cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report the decision without running the update script",
			Destination: &dryRun,
		}, cli.StringFlag{
			Name:        "config",
			Usage:       "YAML file replacing the built-in app table",
			Destination: &configPath,
		}, cli.StringFlag{
			Name:        "script-dir",
			Usage:       "Directory holding update_<app>.sh (default: next to this binary)",
			Destination: &scriptDir,
		}, cli.StringFlag{
			Name:        "env-file",
			Usage:       "Dotenv file with NOTIFICATION_TOKEN, NOTIFICATION_USER and GITHUB_TOKEN",
			Destination: &envFile,
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

		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		appSpec, err := cfg.App(appName)
		if err != nil {
			return err
		}

		if scriptDir == "" {
			scriptDir, err = updater.DefaultScriptDir()
			if err != nil {
				return err
			}
		}

		env := config.ReadEnv()
		notifier := notify.NewPushover(env.NotificationToken, env.NotificationUser, env.NotificationTitle)
		if !notifier.Enabled() {
			log.G(ctx).Warn("Notifications disabled: NOTIFICATION_TOKEN or NOTIFICATION_USER is not set")
		}

		checker := &updater.Checker{
			Releases:  githubrelease.NewClient(ctx, env.GithubToken),
			Versions:  localversion.Reader{},
			Scripts:   updater.ExecRunner{},
			Notifier:  notifier,
			ScriptDir: scriptDir,
			DryRun:    dryRun,
		}

		result, err := checker.Check(ctx, appSpec, force)
		if err != nil {
			return err
		}

		printer.Releases(os.Stdout, []*models.CheckResult{result})
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.L.Fatal(err)
	}
}
