package main

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v2"

	"github.com/mlevkov/s3templates"
	"github.com/mlevkov/s3templates/pongo2loader"
)

var cmdServe = &cli.Command{
	Name:  "serve",
	Usage: "serve rendered bucket templates over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "bind",
			Usage:   "local IP/port to bind to",
			Value:   ":8300",
			EnvVars: []string{"S3TPL_BIND"},
		},
		&cli.DurationFlag{
			Name:  "fetch-timeout",
			Usage: "per-template fetch timeout",
			Value: 10 * time.Second,
		},
	},
	Action: serve,
}

type renderer struct {
	set *pongo2.TemplateSet
}

func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return err
	}
	pctx, ok := data.(pongo2.Context)
	if !ok {
		pctx = pongo2.Context{"data": data}
	}
	return tpl.ExecuteWriter(pctx, w)
}

func serve(cctx *cli.Context) error {
	resolver, err := newResolver(cctx)
	if err != nil {
		return err
	}
	loader := pongo2loader.New(resolver,
		pongo2loader.WithTimeout(cctx.Duration("fetch-timeout")),
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method} path=${uri} status=${status} latency=${latency_human}\n",
	}))
	e.Renderer = &renderer{set: pongo2.NewSet("bucket", loader)}
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		switch {
		case errors.Is(err, s3templates.ErrNotFound):
			err = echo.NewHTTPError(http.StatusNotFound, "template not found")
		case errors.Is(err, s3templates.ErrNoBucket):
			err = echo.NewHTTPError(http.StatusServiceUnavailable, "no bucket configured")
		}
		e.DefaultHTTPErrorHandler(err, c)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/t/*", func(c echo.Context) error {
		name := c.Param("*")
		data := pongo2.Context{}
		for key, values := range c.QueryParams() {
			if len(values) > 0 {
				data[key] = values[0]
			}
		}
		return c.Render(http.StatusOK, name, data)
	})

	return e.Start(cctx.String("bind"))
}
