// Package introspect fetches a server's schema through the standard
// introspection query and prints it back as SDL.
package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/inventory-app/gqlclient"
)

// OperationName is the name of Query.
const OperationName = "IntrospectionQuery"

// Query is the introspection query. Type references are unwrapped up to
// eight levels deep.
const Query = `
query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
    directives {
      name
      description
      locations
      args {
        ...InputValue
      }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`

// Fetch runs the introspection query against c.
func Fetch(ctx context.Context, c *gqlclient.Client) (*Schema, error) {
	op := gqlclient.NewOperation(Query)
	op.SetName(OperationName)

	var data struct {
		Schema Schema `json:"__schema"`
	}
	if err := c.Execute(ctx, op, &data); err != nil {
		return nil, fmt.Errorf("introspect: %w", err)
	}
	return &data.Schema, nil
}

// LoadSchema converts s into a gqlparser schema, so documents can be
// validated against a live server.
func LoadSchema(s *Schema) (*ast.Schema, error) {
	var sb strings.Builder
	if err := PrintSchema(&sb, s); err != nil {
		return nil, err
	}
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "introspection", Input: sb.String()})
	if err != nil {
		return nil, fmt.Errorf("introspect: loading printed schema: %w", err)
	}
	return schema, nil
}
