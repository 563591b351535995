package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/benjaminschreck/go-docxfill/pkg/filler"
)

func tokensCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "List the placeholders of a template",
		ArgsUsage: "TEMPLATE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json or yaml",
				Value:   "text",
			},
		},
		Action: runTokens,
	}
}

func runTokens(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one TEMPLATE argument", 2)
	}

	s := filler.NewSession(filler.WithLogger(e.logger))
	if err := s.Open(c.Args().First()); err != nil {
		return e.loadFailed(err)
	}
	tokens, err := s.DiscoverTokens()
	if err != nil {
		return e.loadFailed(err)
	}

	out := c.App.Writer
	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tokens)
	case "yaml":
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(tokens); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		for _, token := range tokens {
			fmt.Fprintln(out, token)
		}
		return nil
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", c.String("format")), 2)
	}
}

// resolveTokens maps names given on the command line to template tokens.
// A name may be given with or without braces. Names the template lacks are
// kept, since they may still occur in the output pattern, and reported with
// the closest template token, if any.
func resolveTokens(e *env, names []string, discovered filler.TokenPack) filler.TokenPack {
	if len(names) == 0 {
		return discovered
	}

	known := make(map[string]bool, len(discovered))
	bare := make([]string, len(discovered))
	for i, token := range discovered {
		known[token] = true
		bare[i] = strings.TrimSuffix(strings.TrimPrefix(token, "{{"), "}}")
	}

	tokens := make(filler.TokenPack, 0, len(names))
	for _, name := range names {
		token := braced(strings.TrimSpace(name))
		tokens = append(tokens, token)
		if known[token] {
			continue
		}

		matches := fuzzy.Find(strings.Trim(token, "{}"), bare)
		if len(matches) > 0 {
			e.logger.Warn().Str("token", token).Msg(e.t("ui-tokens-suggest", map[string]any{
				"token":      token,
				"suggestion": discovered[matches[0].Index],
			}))
			continue
		}
		e.logger.Warn().Str("token", token).Msg(e.t("ui-tokens-unknown", map[string]any{"token": token}))
	}
	return tokens
}

func braced(name string) string {
	if strings.HasPrefix(name, "{{") && strings.HasSuffix(name, "}}") {
		return name
	}
	return "{{" + name + "}}"
}
