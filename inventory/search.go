package inventory

import (
	"context"

	"github.com/inventory-app/gqlclient"
	"github.com/inventory-app/gqlclient/graph"
)

type SearchForNodeVariables struct {
	Name  string `json:"name"`
	First int32  `json:"first"`
}

// SearchNode is one search suggestion.
type SearchNode struct {
	Typename string `json:"__typename"`
	ID       string `json:"id"`
	Name     string `json:"name"`
}

type SearchForNodeResponse struct {
	SearchForNode struct {
		Edges []struct {
			Node *SearchNode `json:"node"`
		} `json:"edges"`
	} `json:"searchForNode"`
}

// Nodes returns the non-null suggestions in order.
func (r SearchForNodeResponse) Nodes() []SearchNode {
	var nodes []SearchNode
	for _, edge := range r.SearchForNode.Edges {
		if edge.Node != nil {
			nodes = append(nodes, *edge.Node)
		}
	}
	return nodes
}

var SearchForNodeQuery = graph.MustDefine[SearchForNodeVariables, SearchForNodeResponse](`
query SearchForNodeQuery($name: String!, $first: Int) {
	searchForNode(name: $name, first: $first) {
		edges {
			node {
				__typename
				id
				... on Location {
					name
				}
				... on Equipment {
					name
				}
				... on Project {
					name
				}
				... on WorkOrder {
					name
				}
				... on Service {
					name
				}
			}
		}
	}
}
`, graph.WithSchema(Schema))

func SearchForNode(ctx context.Context, env *graph.Environment, vars SearchForNodeVariables) (SearchForNodeResponse, []gqlclient.Error, error) {
	return graph.Fetch(ctx, env, SearchForNodeQuery, vars)
}
