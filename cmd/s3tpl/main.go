// s3tpl inspects and serves templates stored in an S3 bucket.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/urfave/cli/v2"

	"github.com/mlevkov/s3templates"
	"github.com/mlevkov/s3templates/internal/config"
	"github.com/mlevkov/s3templates/s3store"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:  "s3tpl",
		Usage: "inspect and serve templates stored in an S3 bucket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bucket",
				Usage:   "bucket holding the templates",
				EnvVars: []string{"S3TEMPLATES_BUCKET"},
			},
			&cli.StringFlag{
				Name:    "access-key",
				Usage:   "store access key",
				EnvVars: []string{"S3TEMPLATES_ACCESS_KEY", "AWS_ACCESS_KEY_ID"},
			},
			&cli.StringFlag{
				Name:    "secret-key",
				Usage:   "store secret key",
				EnvVars: []string{"S3TEMPLATES_SECRET_KEY", "AWS_SECRET_ACCESS_KEY"},
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "custom endpoint for S3-compatible stores",
				EnvVars: []string{"S3TEMPLATES_ENDPOINT"},
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "store region",
				EnvVars: []string{"S3TEMPLATES_REGION"},
			},
			&cli.StringSliceFlag{
				Name:    "search-path",
				Usage:   "directory prefixes tried after the bare name, in priority order",
				EnvVars: []string{"S3TEMPLATES_SEARCH_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"S3TEMPLATES_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			cmdLs,
			cmdCat,
			cmdStat,
			cmdServe,
		},
	}
	return app.Run(args)
}

// newResolver wires a Resolver from the config file/env, with CLI flags
// taking precedence.
func newResolver(cctx *cli.Context) (*s3templates.Resolver, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v := cctx.String("bucket"); v != "" {
		cfg.Bucket = v
	}
	if v := cctx.String("access-key"); v != "" {
		cfg.AccessKey = v
	}
	if v := cctx.String("secret-key"); v != "" {
		cfg.SecretKey = v
	}
	if v := cctx.String("endpoint"); v != "" {
		cfg.Endpoint = v
	}
	if v := cctx.String("region"); v != "" {
		cfg.Region = v
	}
	searchPath := cfg.SearchDirs()
	if v := cctx.StringSlice("search-path"); len(v) > 0 {
		searchPath = v
	}

	store := s3store.New(s3store.Config{
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
	})
	logger := setupLogger(cctx.String("log-level"))
	slog.SetDefault(logger)
	return s3templates.New(store, cfg.Bucket,
		s3templates.WithSearchPath(searchPath),
		s3templates.WithLogger(logger.With("system", "s3templates")),
	), nil
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
