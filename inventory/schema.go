// Package inventory defines the operations of the inventory and work
// order backend: one descriptor and one dispatch wrapper per action.
//
// Every document is validated against the embedded schema when the package
// is loaded, so a document that drifts from the schema fails at startup
// rather than at dispatch time.
package inventory

import (
	_ "embed"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

//go:embed schema.graphql
var schemaSDL string

// Schema is the inventory backend schema the descriptors are checked
// against.
var Schema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
