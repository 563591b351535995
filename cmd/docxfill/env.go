package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/benjaminschreck/go-docxfill/pkg/filler"
	"github.com/benjaminschreck/go-docxfill/pkg/filler/i18n"
)

// env is the per-invocation state shared by commands
type env struct {
	cfg     *filler.Config
	logger  zerolog.Logger
	catalog *i18n.Catalog
	locale  string
}

func loadEnv(c *cli.Context) (*env, error) {
	cfg, err := filler.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("lang") {
		cfg.Language = c.String("lang")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog, err := i18n.New()
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		logger:  filler.NewLogger(c.App.ErrWriter, cfg.LogLevel, cfg.LogFormat),
		catalog: catalog,
		locale:  catalog.Match(cfg.Language),
	}, nil
}

// fail localizes err for the user, prefixed with the failure title
func (e *env) fail(err error) error {
	return cli.Exit(fmt.Sprintf("%s: %s", e.t("ui-docx-failure", nil), e.catalog.Error(e.locale, err)), 1)
}

// loadFailed localizes an error raised while opening a template or reading its tokens
func (e *env) loadFailed(err error) error {
	return cli.Exit(fmt.Sprintf("%s %s", e.t("ui-docx-load-failed", nil), e.catalog.Error(e.locale, err)), 1)
}

func (e *env) t(key string, data map[string]any) string {
	return e.catalog.T(e.locale, key, data)
}
