package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-app/gqlclient"
	"github.com/inventory-app/gqlclient/graph"
	"github.com/inventory-app/gqlclient/internal/config"
	"github.com/inventory-app/gqlclient/internal/logging"
)

// app holds the settings shared by every subcommand. It is filled in by
// the root command's PersistentPreRunE.
type app struct {
	cfgFile  string
	endpoint string
	headers  []string
	verbose  bool
	yes      bool
	jsonLogs bool

	cfg     config.Config
	cfgPath string
	log     *logrus.Logger
	hc      *http.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "invctl",
		Short:         "Inventory GraphQL client",
		Long:          "invctl runs queries and mutations against the inventory GraphQL API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.invctl/config.yaml)")
	flags.StringVar(&a.endpoint, "endpoint", "", "GraphQL endpoint URL")
	flags.StringArrayVarP(&a.headers, "header", "H", nil, "extra HTTP header, as \"Key: Value\"")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.jsonLogs, "log-json", false, "log as JSON")
	flags.BoolVarP(&a.yes, "yes", "y", false, "answer yes to confirmation prompts")

	rootCmd.AddCommand(newExecCmd(a))
	rootCmd.AddCommand(newIntrospectCmd(a))
	rootCmd.AddCommand(newProjectCmd(a))
	rootCmd.AddCommand(newWorkOrderCmd(a))
	rootCmd.AddCommand(newProjectTypeCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// init resolves configuration: file, then .env and environment, then flags.
func (a *app) init(cmd *cobra.Command) error {
	bootstrap := logging.NewWithOutput(cmd.ErrOrStderr(), "info", a.jsonLogs)
	config.LoadEnv(bootstrap)

	cfg, path, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	cfg = config.ApplyEnv(cfg)
	if a.endpoint != "" {
		cfg.Endpoint = a.endpoint
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if a.jsonLogs {
		cfg.LogJSON = true
	}
	a.cfg = cfg
	a.cfgPath = path

	a.log = logging.NewWithOutput(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogJSON)
	a.log.WithFields(logging.Fields{
		"config":   path,
		"endpoint": cfg.Endpoint,
	}).Debug("configuration loaded")
	return nil
}

func (a *app) client() (*gqlclient.Client, error) {
	if a.cfg.Endpoint == "" {
		return nil, fmt.Errorf("no endpoint configured; use --endpoint or %s", config.EnvEndpoint)
	}
	opts := []gqlclient.Option{gqlclient.WithLogger(logging.WithComponent(a.log, "transport"))}
	for k, v := range a.cfg.Headers {
		opts = append(opts, gqlclient.WithHeader(k, v))
	}
	for _, kv := range a.headers {
		parts := strings.SplitN(kv, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("in header definition %q: missing colon", kv)
		}
		opts = append(opts, gqlclient.WithHeader(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])))
	}
	return gqlclient.New(a.cfg.Endpoint, a.hc, opts...), nil
}

// environment returns a new environment; callers must Close it.
func (a *app) environment() (*graph.Environment, error) {
	c, err := a.client()
	if err != nil {
		return nil, err
	}
	return graph.NewEnvironment(c, nil,
		graph.WithLogger(logging.WithComponent(a.log, "graph")),
		graph.WithTimeout(a.cfg.Timeout),
	), nil
}

// requestContext bounds a direct client call by the configured timeout.
func (a *app) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), a.cfg.Timeout)
}
