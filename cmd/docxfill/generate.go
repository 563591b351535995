package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/benjaminschreck/go-docxfill/pkg/filler"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate one document per line of values",
		ArgsUsage: "TEMPLATE",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "tokens",
				Aliases: []string{"t"},
				Usage:   "Token order, e.g. name,city (default: order of appearance)",
			},
			&cli.StringFlag{
				Name:  "values",
				Usage: "Value lines, fields split by the separator",
			},
			&cli.StringFlag{
				Name:    "values-file",
				Aliases: []string{"f"},
				Usage:   "Read value lines from `FILE` (- for stdin)",
			},
			&cli.StringFlag{
				Name:    "separator",
				Aliases: []string{"s"},
				Usage:   "Field separator (default from config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file pattern (default: first token + .docx)",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "Directory for generated documents",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Documents generated concurrently",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one TEMPLATE argument", 2)
	}

	workers := e.cfg.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}
	s := filler.NewSession(filler.WithLogger(e.logger), filler.WithWorkers(workers))
	if err := s.Open(c.Args().First()); err != nil {
		return e.loadFailed(err)
	}
	discovered, err := s.DiscoverTokens()
	if err != nil {
		return e.loadFailed(err)
	}
	tokens := resolveTokens(e, c.StringSlice("tokens"), discovered)

	text, err := readValues(c)
	if err != nil {
		return err
	}

	separator := e.cfg.Separator
	if c.IsSet("separator") {
		separator = c.String("separator")
	}

	pattern := c.String("output")
	if pattern == "" {
		pattern = filler.DefaultOutputPattern(tokens)
	}
	outDir := e.cfg.OutputDir
	if c.IsSet("out-dir") {
		outDir = c.String("out-dir")
	}
	if outDir != "" {
		pattern = filepath.Join(outDir, pattern)
	}

	written, err := s.GenerateBatch(c.Context, tokens, text, separator, pattern)
	for _, path := range written {
		fmt.Fprintln(c.App.Writer, path)
	}
	if err != nil {
		return e.fail(err)
	}

	e.logger.Info().Msg(fmt.Sprintf("%s: %s", e.t("ui-docx-success", nil), e.t("ui-docx-generated", map[string]any{"count": len(written)})))
	return nil
}

func readValues(c *cli.Context) (string, error) {
	path := c.String("values-file")
	if path == "" {
		return c.String("values"), nil
	}
	if c.IsSet("values") {
		return "", cli.Exit("--values and --values-file are mutually exclusive", 2)
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
