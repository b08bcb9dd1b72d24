package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/inventory-app/gqlclient"
	"github.com/inventory-app/gqlclient/internal/introspect"
)

type execOptions struct {
	file      string
	operation string
	rawVars   []string
	jsonVars  []string
	check     bool
}

func newExecCmd(a *app) *cobra.Command {
	var opts execOptions
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Run a GraphQL document read from stdin",
		Long: "Run a GraphQL document read from stdin (or --file) and print the data member " +
			"of the response. GraphQL errors are reported after the data.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the document from a file instead of stdin")
	cmd.Flags().StringVarP(&opts.operation, "operation", "o", "", "operation to run when the document holds several")
	cmd.Flags().StringArrayVar(&opts.rawVars, "var", nil, "set a string variable, as key=value")
	cmd.Flags().StringArrayVarP(&opts.jsonVars, "json-var", "j", nil, "set a JSON variable, as key=value")
	cmd.Flags().BoolVar(&opts.check, "check", false, "validate the document against the server schema first")
	return cmd
}

func splitKeyValue(kv string) (string, string, error) {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("in variable definition %q: missing equal sign", kv)
	}
	return parts[0], parts[1], nil
}

func readDocument(cmd *cobra.Command, file string) (string, error) {
	var (
		b   []byte
		err error
	)
	if file != "" {
		b, err = os.ReadFile(file)
	} else {
		b, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("failed to read GraphQL document: %w", err)
	}
	return string(b), nil
}

// operationName picks the operation to send. A document with a single
// named operation needs no explicit name.
func operationName(query, requested string) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "stdin", Input: query})
	if err != nil {
		return "", err
	}
	if requested != "" {
		if doc.Operations.ForName(requested) == nil {
			return "", fmt.Errorf("document has no operation named %q", requested)
		}
		return requested, nil
	}
	if len(doc.Operations) > 1 {
		return "", fmt.Errorf("document holds %d operations; select one with --operation", len(doc.Operations))
	}
	if len(doc.Operations) == 1 {
		return doc.Operations[0].Name, nil
	}
	return "", nil
}

func runExec(cmd *cobra.Command, a *app, opts execOptions) error {
	query, err := readDocument(cmd, opts.file)
	if err != nil {
		return err
	}
	name, err := operationName(query, opts.operation)
	if err != nil {
		return err
	}

	op := gqlclient.NewOperation(query)
	op.SetName(name)
	for _, kv := range opts.rawVars {
		k, v, err := splitKeyValue(kv)
		if err != nil {
			return err
		}
		op.Var(k, v)
	}
	for _, kv := range opts.jsonVars {
		k, raw, err := splitKeyValue(kv)
		if err != nil {
			return err
		}
		if !json.Valid([]byte(raw)) {
			return fmt.Errorf("in variable definition %q: invalid JSON", kv)
		}
		op.Var(k, json.RawMessage(raw))
	}

	c, err := a.client()
	if err != nil {
		return err
	}
	ctx, cancel := a.requestContext(cmd)
	defer cancel()

	if opts.check {
		if err := checkDocument(ctx, c, query); err != nil {
			return err
		}
	}

	resp, err := c.Do(ctx, op)
	if err != nil {
		return err
	}
	if resp.HasData() {
		out := cmd.OutOrStdout()
		if _, err := out.Write(resp.Data); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
		fmt.Fprintln(out)
	}
	for i := 1; i < len(resp.Errors); i++ {
		a.log.WithField("path", resp.Errors[i].Path).Warn(resp.Errors[i].Message)
	}
	if len(resp.Errors) > 0 {
		return &resp.Errors[0]
	}
	return nil
}

func checkDocument(ctx context.Context, c *gqlclient.Client, query string) error {
	remote, err := introspect.Fetch(ctx, c)
	if err != nil {
		return err
	}
	schema, err := introspect.LoadSchema(remote)
	if err != nil {
		return err
	}
	if _, errs := gqlparser.LoadQuery(schema, query); len(errs) > 0 {
		return fmt.Errorf("document does not validate: %w", errs)
	}
	return nil
}
