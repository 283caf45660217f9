package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-beans/app/services"
	"github.com/km-arc/go-beans/framework/app"
	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/config"
	gohttp "github.com/km-arc/go-beans/framework/http"
	"github.com/km-arc/go-beans/framework/logging"
)

const appName = "go-beans"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	envFile     string
	definitions string
	format      string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:          appName,
		Short:        "Start a bean context from a definition file and inspect it",
		Version:      app.Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before reading config")
	root.PersistentFlags().StringVar(&flags.definitions, "definitions", "", "definition file (overrides BEANS_DEFINITIONS)")
	root.PersistentFlags().StringVar(&flags.format, "format", "", "definition format: yaml, toml or xml (overrides BEANS_FORMAT)")

	root.AddCommand(newListCmd(flags), newGetCmd(flags), newServeCmd(flags))
	return root
}

// application loads config, builds the logger and registers the sample
// providers. It does not boot.
func (f *globalFlags) application() (*app.Application, error) {
	cfg := config.Load(f.envFile)
	if f.definitions != "" {
		cfg.Beans.Definitions = f.definitions
	}
	if f.format != "" {
		cfg.Beans.Format = f.format
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	a := app.New(cfg, log.With(zap.String("app", cfg.App.Name)))
	a.Register(&services.AppServiceProvider{})
	return a, nil
}

func (f *globalFlags) boot() (*app.Application, error) {
	a, err := f.application()
	if err != nil {
		return nil, err
	}
	if err := a.Boot(); err != nil {
		_ = a.Log.Sync()
		return nil, err
	}
	return a, nil
}

// ── list ─────────────────────────────────────────────────────────────────────

func newListCmd(flags *globalFlags) *cobra.Command {
	var typeFilter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every bean in definition order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.boot()
			if err != nil {
				return err
			}
			defer func() { _ = a.Log.Sync() }()

			defs := definitionsByID(a.Context.Definitions())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tRUNTIME TYPE")
			for _, b := range a.Context.Beans() {
				view := gohttp.ViewOf(b, defs[b.ID])
				if typeFilter != "" && view.RuntimeType != typeFilter && view.Type != typeFilter {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", view.ID, view.Type, view.RuntimeType)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&typeFilter, "type", "", "only beans with this registered or runtime type")
	return cmd
}

// ── get ──────────────────────────────────────────────────────────────────────

func newGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one bean and its post-processed definition",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			a, err := flags.boot()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			var ids []string
			for _, d := range a.Context.Definitions() {
				ids = append(ids, d.ID)
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.boot()
			if err != nil {
				return err
			}
			defer func() { _ = a.Log.Sync() }()

			id := args[0]
			instance, err := a.Context.Bean(id)
			if err != nil {
				return err
			}
			view := gohttp.ViewOf(beans.Bean{ID: id, Instance: instance}, definitionsByID(a.Context.Definitions())[id])

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(view); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// ── serve ────────────────────────────────────────────────────────────────────

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Boot the context and serve the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.application()
			if err != nil {
				return err
			}
			defer func() { _ = a.Log.Sync() }()
			if addr != "" {
				a.Config.Admin.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADMIN_ADDR)")
	return cmd
}

func definitionsByID(defs []beans.Definition) map[string]beans.Definition {
	out := make(map[string]beans.Definition, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out
}
