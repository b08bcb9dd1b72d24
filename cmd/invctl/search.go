package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inventory-app/gqlclient/action"
	"github.com/inventory-app/gqlclient/internal/debounce"
	"github.com/inventory-app/gqlclient/internal/logging"
	"github.com/inventory-app/gqlclient/inventory"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		limit       int32
		interactive bool
		window      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search inventory nodes by name",
		Long: "Search inventory nodes by name. With --interactive every line read from " +
			"stdin is treated as the current content of a search box.",
		Args: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := a.environment()
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			if !interactive {
				resp, errs, err := inventory.SearchForNode(cmd.Context(), env, inventory.SearchForNodeVariables{Name: args[0], First: limit})
				if err != nil {
					return err
				}
				if len(errs) > 0 {
					return &errs[0]
				}
				printNodes(out, resp.Nodes())
				return nil
			}

			ta := action.NewTypeahead(env, func(term string, nodes []inventory.SearchNode, err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "search %q failed: %v\n", term, err)
					return
				}
				if term == "" {
					return
				}
				fmt.Fprintf(out, "> %s\n", term)
				printNodes(out, nodes)
			}, action.WithWindow(window), action.WithLimit(limit), action.WithTypeaheadLogger(logging.WithComponent(a.log, "typeahead")))

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				ta.Input(cmd.Context(), scanner.Text())
			}
			ta.Flush()
			return scanner.Err()
		},
	}
	cmd.Flags().Int32Var(&limit, "limit", 10, "maximum number of suggestions")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read search input line by line from stdin")
	cmd.Flags().DurationVar(&window, "debounce", debounce.DefaultWindow, "debounce window for interactive input")
	return cmd
}

func printNodes(w io.Writer, nodes []inventory.SearchNode) {
	if len(nodes) == 0 {
		fmt.Fprintln(w, "  no matches")
		return
	}
	for _, n := range nodes {
		fmt.Fprintf(w, "  %-10s %-24s %s\n", n.Typename, n.ID, strings.TrimSpace(n.Name))
	}
}
