package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"despesas/internal/cli"
	"despesas/internal/config"
	"despesas/internal/core"
	"despesas/internal/log"
	"despesas/internal/services"
)

var version = "dev"

// rootOptions carries the flag values and the state prepared before any
// subcommand runs.
type rootOptions struct {
	logLevel  string
	logFormat string
	backend   string

	cfg    *config.Config
	base   *log.Logger // untagged, for packages that attach their own component
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "despesas",
		Short: "Shared expense ledger for two people",
		Long: `despesas records shared expenses, keeps a list of categories and shows
how much each person paid.

Data is stored locally in SQLite by default. Use "despesas serve" to expose
the same ledger as a JSON API.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.init,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text, json)")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend (sqlite, file, memory)")

	root.AddCommand(addCmd(opts))
	root.AddCommand(editCmd(opts))
	root.AddCommand(deleteCmd(opts))
	root.AddCommand(listCmd(opts))
	root.AddCommand(reportCmd(opts))
	root.AddCommand(categoriesCmd(opts))
	root.AddCommand(serveCmd(opts))

	return root
}

func (o *rootOptions) init(cmd *cobra.Command, _ []string) error {
	if err := cli.LoadEnvFile(); err != nil {
		return err
	}
	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if o.logLevel != "" {
			c.LogLevel = o.logLevel
		}
		if o.logFormat != "" {
			c.LogFormat = o.logFormat
		}
		if o.backend != "" {
			c.DataBackend = o.backend
		}
	})
	if err != nil {
		return err
	}
	logger, err := cli.SetupLogger(cfg)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.base = logger
	o.logger = logger.WithComponent(log.ComponentCLI)
	return nil
}

// open loads the ledger. Callers must Close the returned app.
func (o *rootOptions) open(ctx context.Context) (*cli.App, error) {
	app, err := cli.OpenLedger(ctx, o.cfg, o.base)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	return app, nil
}

func (o *rootOptions) closeApp(ctx context.Context, app *cli.App) {
	if err := app.Close(); err != nil {
		o.logger.ErrorContext(ctx, "Failed to close storage", log.FieldError, err)
	}
}

// userMessage turns an error into the line shown to the user. Rejected
// drafts show the fixed validation message.
func userMessage(err error) string {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if services.IsNotFound(err) {
		return "Despesa não encontrada."
	}
	return err.Error()
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, cli.FormatError(userMessage(err)))
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
