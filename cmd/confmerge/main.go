package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"git.sr.ht/~spc/go-log"
	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/redhatinsights/confmerge/internal/conf"
	"github.com/redhatinsights/confmerge/internal/l10n"
	"github.com/redhatinsights/confmerge/internal/merge"
	"github.com/redhatinsights/confmerge/internal/source"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "confmerge",
		Usage: l10n.T("merge layered configuration files"),
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   l10n.T("read configuration from `PATH[@KEYPATH]`, merged at KEYPATH when given"),
			},
			&cli.StringFlag{
				Name:  "drop-in-dir",
				Usage: l10n.T("merge every configuration file in `DIR` after the sources"),
			},
			&cli.StringFlag{
				Name:  "strategy",
				Value: "merge",
				Usage: l10n.T("combine colliding lists with `STRATEGY` (merge or replace)"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 30 * time.Second,
				Usage: l10n.T("abort loading after `DURATION`"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "error",
				Usage: l10n.T("set the log level to `LEVEL`"),
			},
		},
		Before: beforeAction,
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: l10n.T("print the merged configuration"),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: formatJSON,
						Usage: l10n.T("output `FORMAT` (json, yaml or toml)"),
					},
					&cli.StringFlag{
						Name:  "path",
						Usage: l10n.T("print only the value at `KEYPATH`"),
					},
				},
				Action: showAction,
			},
			{
				Name:      "get",
				Usage:     l10n.T("print the value at a key path"),
				ArgsUsage: "KEYPATH",
				Action:    getAction,
			},
		},
	}
}

func beforeAction(c *cli.Context) error {
	level, err := log.ParseLevel(c.String("log-level"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.SetLevel(level)

	// Route library debug output to stderr alongside the command's own.
	switch strings.ToLower(c.String("log-level")) {
	case "debug", "trace":
		handler := slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug})
		slog.SetDefault(slog.New(handler))
	}

	if _, err := merge.ParseStrategy(c.String("strategy")); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func showAction(c *cli.Context) error {
	config, err := buildConfiguration(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	var value any = config.All()
	if path := c.String("path"); path != "" {
		v, ok := config.Lookup(path)
		if !ok {
			return cli.Exit(l10n.T("key path %q not found", path), 1)
		}
		value = v
	}

	if err := render(c.App.Writer, c.String("format"), value); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func getAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("expected exactly one key path"), 1)
	}
	path := c.Args().First()

	config, err := buildConfiguration(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	value, ok := config.Lookup(path)
	if !ok {
		return cli.Exit(l10n.T("key path %q not found", path), 1)
	}

	if s, ok := value.(string); ok {
		_, err = fmt.Fprintln(c.App.Writer, s)
	} else {
		err = render(c.App.Writer, formatJSON, value)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

// sourceArg is a parsed --source value.
type sourceArg struct {
	path    string
	keyPath string
}

// parseSourceArg splits "PATH@KEYPATH" at the last "@".
func parseSourceArg(arg string) (sourceArg, error) {
	i := strings.LastIndex(arg, "@")
	if i < 0 {
		return sourceArg{path: arg}, nil
	}
	if i == 0 || i == len(arg)-1 {
		return sourceArg{}, fmt.Errorf(l10n.T("invalid source %q: expected PATH@KEYPATH"), arg)
	}
	return sourceArg{path: arg[:i], keyPath: arg[i+1:]}, nil
}

// buildConfiguration registers the sources named on the command line and
// builds the merged configuration.
func buildConfiguration(c *cli.Context) (*conf.Configuration, error) {
	strategy, err := merge.ParseStrategy(c.String("strategy"))
	if err != nil {
		return nil, err
	}

	b := conf.NewBuilder()
	for _, value := range c.StringSlice("source") {
		arg, err := parseSourceArg(value)
		if err != nil {
			return nil, err
		}
		src, err := source.ForPath(arg.path)
		if err != nil {
			return nil, err
		}
		if arg.keyPath != "" {
			b.AddSourceAt(src, arg.keyPath)
		} else {
			b.AddSource(src)
		}
	}

	if dir := c.String("drop-in-dir"); dir != "" {
		dropIns, err := source.DropIns(dir)
		if err != nil {
			return nil, err
		}
		for _, src := range dropIns {
			b.AddSource(src)
		}
	}

	n := b.Len()
	log.Debugf("%s", l10n.TN("building configuration from %d source", "building configuration from %d sources", uint32(n), n))

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	stop := startSpinner(c.App.ErrWriter)
	defer stop()

	return b.Build(ctx, strategy)
}

// startSpinner shows progress on w while the configuration loads, when w is
// a terminal. The returned function stops it.
func startSpinner(w io.Writer) func() {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = l10n.T(" Loading configuration...")
	s.Start()
	return s.Stop
}
