package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inventory-app/gqlclient/internal/introspect"
)

func newIntrospectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "introspect",
		Short: "Print the server schema as SDL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			schema, err := introspect.Fetch(ctx, c)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Endpoint(), err)
			}
			return introspect.PrintSchema(cmd.OutOrStdout(), schema)
		},
	}
}
