package main

import (
	"fmt"
	"os"

	"github.com/dave/jennifer/jen"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

type options struct {
	schemas []string
	queries []string
	output  string
	pkgName string
}

func newRootCmd(log logrus.FieldLogger) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "gqlclientgen -s <schema> -o <output> [-q <query>...]",
		Short: "Generate Go types, descriptors and dispatch wrappers for a GraphQL schema",
		Long: `Generate Go types for the specified GraphQL schema and, for every operation
in the query documents, a variables type, a response type, a descriptor and a
wrapper: Commit for mutations, Fetch for queries.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := run(opts)
			if err != nil {
				return err
			}
			if err := f.Save(opts.output); err != nil {
				return fmt.Errorf("failed to save output file: %w", err)
			}
			log.WithFields(logrus.Fields{
				"output":  opts.output,
				"package": opts.pkgName,
			}).Info("generated client")
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&opts.schemas, "schema", "s", nil, "GraphQL schema, can be specified multiple times")
	cmd.Flags().StringArrayVarP(&opts.queries, "query", "q", nil, "GraphQL query document, can be specified multiple times")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output filename for generated Go code")
	cmd.Flags().StringVarP(&opts.pkgName, "package", "n", "main", "Go package name")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func loadSources(filenames []string) ([]*ast.Source, error) {
	var sources []*ast.Source
	for _, filename := range filenames {
		b, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		sources = append(sources, &ast.Source{Name: filename, Input: string(b)})
	}
	return sources, nil
}

func run(opts options) (*jen.File, error) {
	sources, err := loadSources(opts.schemas)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	var queries []*ast.QueryDocument
	for _, filename := range opts.queries {
		b, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to load query: %w", err)
		}
		q, gqlErr := gqlparser.LoadQuery(schema, string(b))
		if gqlErr != nil {
			return nil, fmt.Errorf("failed to parse query %q: %w", filename, gqlErr)
		}
		queries = append(queries, q)
	}

	f := jen.NewFile(opts.pkgName)
	f.HeaderComment("Code generated by gqlclientgen - DO NOT EDIT")
	if err := generate(f, schema, queries); err != nil {
		return nil, err
	}
	return f, nil
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if err := newRootCmd(log).Execute(); err != nil {
		log.Fatal(err)
	}
}
