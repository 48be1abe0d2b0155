package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-welcome"
)

const shutdownTimeout = 10 * time.Second

type serveFunc func(ctx context.Context, cfg welcome.Config) error

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(ctx, serve).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(ctx context.Context, run serveFunc) *cli.App {
	app := cli.NewApp()
	app.Name = "welcomepage"
	app.Usage = "Serve a directory of Markdown files as a wiki"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:   "config",
			Usage:  "YAML configuration file",
			EnvVar: "WELCOME_CONFIG",
		},
		&cli.StringFlag{
			Name:   "root-directory",
			Usage:  "Directory holding the <Id>.md files",
			EnvVar: "WELCOME_ROOT_DIRECTORY",
		},
		&cli.StringFlag{
			Name:   "address",
			Usage:  "Listen address",
			EnvVar: "WELCOME_ADDRESS",
		},
		&cli.StringFlag{
			Name:   "log-level",
			Usage:  "trace, debug, info, warn, error or fatal",
			EnvVar: "WELCOME_LOG_LEVEL",
		},
		&cli.StringFlag{
			Name:   "log-provider",
			Usage:  "console or gologger",
			EnvVar: "WELCOME_LOG_PROVIDER",
		},
		&cli.BoolFlag{
			Name:   "access-log",
			Usage:  "Write a combined-format access log to stdout",
			EnvVar: "WELCOME_ACCESS_LOG",
		},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := buildConfig(c)
		if err != nil {
			return err
		}
		return run(ctx, cfg)
	}
	return app
}

// buildConfig loads the optional config file and overlays any flag or
// environment value that was set.
func buildConfig(c *cli.Context) (welcome.Config, error) {
	cfg := welcome.DefaultConfig()
	if path := strings.TrimSpace(c.String("config")); path != "" {
		loaded, err := welcome.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	overlay := map[string]*string{
		"root-directory": &cfg.RootDirectory,
		"address":        &cfg.Address,
		"log-level":      &cfg.Logging.Level,
		"log-provider":   &cfg.Logging.Provider,
	}
	for name, target := range overlay {
		if value := strings.TrimSpace(c.String(name)); value != "" {
			*target = value
		}
	}
	if c.Bool("access-log") {
		cfg.Logging.AccessLog = true
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg welcome.Config) error {
	module, err := welcome.New(cfg)
	if err != nil {
		return err
	}
	logger := module.Logger()

	handler := module.Handler()
	if cfg.Logging.AccessLog {
		handler = handlers.CombinedLoggingHandler(os.Stdout, handler)
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("welcome.shutdown", "address", cfg.Address)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	green := color.New(color.FgGreen).SprintFunc()
	log.Printf("%s serving %s on %s", green("[ welcome ]"), cfg.RootDirectory, cfg.Address)

	return group.Wait()
}
