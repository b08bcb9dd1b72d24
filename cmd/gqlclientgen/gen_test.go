package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const testSchema = `
scalar Time
scalar Cursor

interface Node {
	id: ID!
}

enum WorkOrderStatus {
	PLANNED
	IN_PROGRESS
	DONE
}

type WorkOrder implements Node {
	id: ID!
	name: String!
	status: WorkOrderStatus!
	installDate: Time
}

union SearchResult = WorkOrder

input EditWorkOrderInput {
	id: ID!
	name: String!
	status: WorkOrderStatus
}

type Query {
	node(id: ID!): Node
	workOrders(first: Int, after: Cursor): [WorkOrder!]!
	search(name: String!): [SearchResult]
}

type Mutation {
	removeWorkOrder(id: ID!): ID!
	editWorkOrder(input: EditWorkOrderInput!): WorkOrder!
}
`

const testQueries = `
fragment WorkOrderFields on WorkOrder {
	id
	name
	status
}

mutation RemoveWorkOrderMutation($id: ID!) {
	removeWorkOrder(id: $id)
}

mutation EditWorkOrderMutation($input: EditWorkOrderInput!) {
	editWorkOrder(input: $input) {
		...WorkOrderFields
	}
}

query WorkOrdersQuery($first: Int, $after: Cursor) {
	workOrders(first: $first, after: $after) {
		...WorkOrderFields
	}
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func render(t *testing.T, opts options) string {
	t.Helper()
	f, err := run(opts)
	require.NoError(t, err)
	var sb strings.Builder
	require.NoError(t, f.Render(&sb))
	return sb.String()
}

func TestGenerate(t *testing.T) {
	out := render(t, options{
		schemas: []string{writeFile(t, "schema.graphql", testSchema)},
		queries: []string{writeFile(t, "operations.graphql", testQueries)},
		pkgName: "workorders",
	})

	for _, want := range []string{
		"// Code generated by gqlclientgen - DO NOT EDIT",
		"package workorders",
		"WorkOrderStatusInProgress WorkOrderStatus = \"IN_PROGRESS\"",
		"func (union *SearchResult) UnmarshalJSON(b []byte) error {",
		"type RemoveWorkOrderVariables struct {",
		"RemoveWorkOrder string `json:\"removeWorkOrder\"`",
		"var RemoveWorkOrderMutation = graph.MustDefine[RemoveWorkOrderVariables, RemoveWorkOrderResponse](",
		"func RemoveWorkOrder(env *graph.Environment, vars RemoveWorkOrderVariables, cb graph.Callbacks[RemoveWorkOrderResponse], updater graph.Updater[RemoveWorkOrderResponse]) {",
		"graph.Commit(env, RemoveWorkOrderMutation, vars, cb, updater)",
		"EditWorkOrder *WorkOrder `json:\"editWorkOrder\"`",
		"After *string `json:\"after,omitempty\"`",
		"func WorkOrders(ctx context.Context, env *graph.Environment, vars WorkOrdersVariables) (WorkOrdersResponse, []gqlclient.Error, error) {",
		"return graph.Fetch(ctx, env, WorkOrdersQuery, vars)",
		"\"github.com/inventory-app/gqlclient/graph\"",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "type Cursor")
	assert.Regexp(t, `InstallDate\s+\*time\.Time\s+`+"`json:\"installDate,omitempty\"`", out)
	assert.Regexp(t, `Status\s+\*WorkOrderStatus\s+`+"`json:\"status,omitempty\"`", out)
	assert.Equal(t, 2, strings.Count(out, "fragment WorkOrderFields on WorkOrder"))
}

func TestGenerateRejectsAnonymousOperation(t *testing.T) {
	_, err := run(options{
		schemas: []string{writeFile(t, "schema.graphql", testSchema)},
		queries: []string{writeFile(t, "anon.graphql", "{ node(id: \"1\") { id } }")},
		pkgName: "main",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anonymous")
}

func TestGenerateInvalidQuery(t *testing.T) {
	_, err := run(options{
		schemas: []string{writeFile(t, "schema.graphql", testSchema)},
		queries: []string{writeFile(t, "bad.graphql", "query Bad { missing }")},
		pkgName: "main",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.graphql")
}

func TestNamesFor(t *testing.T) {
	cases := []struct {
		op   string
		want opNames
	}{
		{"RemoveProjectMutation", opNames{"RemoveProjectMutation", "RemoveProject", "RemoveProjectVariables", "RemoveProjectResponse"}},
		{"searchForNodeQuery", opNames{"SearchForNodeQuery", "SearchForNode", "SearchForNodeVariables", "SearchForNodeResponse"}},
		{"Projects", opNames{"ProjectsDescriptor", "Projects", "ProjectsVariables", "ProjectsResponse"}},
		{"Query", opNames{"QueryDescriptor", "Query", "QueryVariables", "QueryResponse"}},
	}
	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			assert.Equal(t, tc.want, namesFor(&ast.OperationDefinition{Name: tc.op}))
		})
	}
}

func TestUsedFragmentsFollowsNestedSpreads(t *testing.T) {
	doc, err := parser.ParseQuery(&ast.Source{Input: `
query Q { workOrders { ...A } }
fragment A on WorkOrder { id ...B }
fragment B on WorkOrder { name }
fragment C on WorkOrder { status }
`})
	require.NoError(t, err)

	var names []string
	for _, frag := range usedFragments(doc, doc.Operations[0].SelectionSet) {
		names = append(names, frag.Name)
	}
	assert.Equal(t, []string{"A", "B"}, names)
}
