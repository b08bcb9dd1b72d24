// Package graph dispatches typed GraphQL operations against a shared
// normalized cache.
//
// Every write goes through Commit: one descriptor, one set of variables,
// optional callbacks and an optional store updater. Completion is delivered
// on the environment's loop, which is the only place the cache is written.
package graph

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Descriptor is a pre-declared operation with input shape V and response
// shape R. Descriptors are immutable and meant to be package-level values.
type Descriptor[V, R any] struct {
	name      string
	kind      ast.Operation
	query     string
	variables []string
	handles   map[string]string
}

type defineOptions struct {
	schema  *ast.Schema
	handles map[string]string
}

type DefineOption func(*defineOptions)

// WithSchema validates the document against schema.
func WithSchema(schema *ast.Schema) DefineOption {
	return func(o *defineOptions) {
		o.schema = schema
	}
}

// WithConnection stores the response field named field as the connection
// key, so updaters can find it with store.Tx.Connection.
func WithConnection(field, key string) DefineOption {
	return func(o *defineOptions) {
		o.handles[field] = key
	}
}

// Define parses document, which must contain exactly one named operation
// and may contain fragments.
func Define[V, R any](document string, opts ...DefineOption) (*Descriptor[V, R], error) {
	o := defineOptions{handles: make(map[string]string)}
	for _, opt := range opts {
		opt(&o)
	}

	var doc *ast.QueryDocument
	if o.schema != nil {
		var errs error
		doc, errs = loadQuery(o.schema, document)
		if errs != nil {
			return nil, errs
		}
	} else {
		var err error
		doc, err = parser.ParseQuery(&ast.Source{Name: "document", Input: document})
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
	}

	if len(doc.Operations) != 1 {
		return nil, fmt.Errorf("document must contain exactly one operation, got %d", len(doc.Operations))
	}
	op := doc.Operations[0]
	if op.Name == "" {
		return nil, fmt.Errorf("%s operation must be named", op.Operation)
	}

	d := &Descriptor[V, R]{
		name:    op.Name,
		kind:    op.Operation,
		query:   strings.TrimSpace(document),
		handles: o.handles,
	}
	for _, v := range op.VariableDefinitions {
		d.variables = append(d.variables, v.Variable)
	}
	return d, nil
}

func loadQuery(schema *ast.Schema, document string) (*ast.QueryDocument, error) {
	doc, errs := gqlparser.LoadQuery(schema, document)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid document: %w", errs)
	}
	return doc, nil
}

// MustDefine is like Define but panics on error.
func MustDefine[V, R any](document string, opts ...DefineOption) *Descriptor[V, R] {
	d, err := Define[V, R](document, opts...)
	if err != nil {
		panic(fmt.Sprintf("graph: %v", err))
	}
	return d
}

func (d *Descriptor[V, R]) Name() string {
	return d.name
}

func (d *Descriptor[V, R]) Kind() ast.Operation {
	return d.kind
}

func (d *Descriptor[V, R]) Query() string {
	return d.query
}

// Variables returns the names of the declared variables.
func (d *Descriptor[V, R]) Variables() []string {
	return append([]string(nil), d.variables...)
}
