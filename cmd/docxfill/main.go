package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const version = "0.2.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		// localized failures already carry their own title
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exit.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "docxfill",
		Usage:   "Fill {{token}} placeholders in DOCX templates",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Message language (en-US, cs, ru)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{
			tokensCommand(),
			generateCommand(),
			configCommand(),
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			// errors are printed once by main
		},
	}
}
