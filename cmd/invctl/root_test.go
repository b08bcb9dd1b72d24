package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-app/gqlclient/internal/gqltest"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, srv *gqltest.Server, stdin string, args ...string) result {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("INVCTL_ENDPOINT", "")
	t.Setenv("INVCTL_TIMEOUT", "")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	base := []string{"--config", filepath.Join(home, "config.yaml")}
	if srv != nil {
		base = append(base, "--endpoint", srv.URL)
	}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestExec(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("Hello", `{"data":{"hello":"world"}}`)

	res := run(t, srv, "query Hello($name: String, $n: Int) { hello(name: $name, n: $n) }",
		"exec", "--var", "name=inventory", "-j", "n=3", "-H", "X-Token: abc")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "{\"hello\":\"world\"}\n", res.stdout)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Hello", reqs[0].OperationName)
	assert.Equal(t, "inventory", reqs[0].Variables["name"])
	assert.EqualValues(t, 3, reqs[0].Variables["n"])
	assert.Equal(t, "abc", reqs[0].Header.Get("X-Token"))
}

func TestExecReportsGraphQLError(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("Broken", `{"data":null,"errors":[{"message":"boom"}]}`)

	res := run(t, srv, "query Broken { broken }", "exec")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "boom")
	assert.Empty(t, res.stdout)
}

func TestExecNeedsOperationForMultiOperationDocument(t *testing.T) {
	srv := gqltest.NewServer(t)
	res := run(t, srv, "query A { a }\nquery B { b }", "exec")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--operation")
	assert.Empty(t, srv.Requests())

	res = run(t, srv, "query A { a }\nquery B { b }", "exec", "--operation", "B")
	require.NoError(t, res.err)
	assert.Equal(t, 1, srv.Count("B"))
}

func TestExecRejectsBadVariables(t *testing.T) {
	srv := gqltest.NewServer(t)
	res := run(t, srv, "query A { a }", "exec", "-j", "x={not json")
	require.Error(t, res.err)
	res = run(t, srv, "query A { a }", "exec", "--var", "missing-equal")
	require.Error(t, res.err)
	assert.Empty(t, srv.Requests())
}

func TestProjectDeleteAssumeYes(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("RemoveProjectMutation", `{"data":{"deleteProject":true}}`)

	res := run(t, srv, "", "--yes", "project", "delete", "p1", "p2")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "deleted p1\n")
	assert.Contains(t, res.stdout, "deleted p2\n")
	assert.Equal(t, 2, srv.Count("RemoveProjectMutation"))
}

func TestProjectDeletePromptsAndRespectsNo(t *testing.T) {
	srv := gqltest.NewServer(t)
	res := run(t, srv, "n\n", "project", "delete", "p1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Are you sure you want to delete this project? (p1) [y/N]")
	assert.Empty(t, srv.Requests())
	assert.Empty(t, res.stdout)
}

func TestWorkOrderDeleteConfirmed(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("RemoveWorkOrderMutation", `{"data":{"removeWorkOrder":"wo-1"}}`)

	res := run(t, srv, "y\n", "workorder", "delete", "wo-1")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stderr, "delete this work order?")
	assert.Equal(t, "deleted wo-1\n", res.stdout)
}

func TestProjectDeleteFailure(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("RemoveProjectMutation", `{"data":null,"errors":[{"message":"has work orders"}]}`)

	res := run(t, srv, "", "-y", "project", "delete", "p1")
	require.Error(t, res.err)
	assert.Equal(t, "1 of 1 projects could not be deleted", res.err.Error())
	assert.Contains(t, res.stderr, "error: Failed removing project")
	assert.Empty(t, res.stdout)
}

func TestProjectList(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("ProjectsQuery", `{"data":{"projects":{"totalCount":2,"edges":[
		{"cursor":"c1","node":{"__typename":"Project","id":"p1","name":"Fiber rollout","description":null,"type":{"id":"t1","name":"Rollout"},"location":{"id":"l1","name":"Site 7"},"numberOfWorkOrders":3}}
	],"pageInfo":{"hasNextPage":true,"endCursor":"c1"}}}}`)

	res := run(t, srv, "", "project", "list", "--first", "1")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "ID  NAME")
	assert.Contains(t, res.stdout, "p1  Fiber rollout  Rollout   Site 7    3")
	assert.Contains(t, res.stdout, "1 of 2 projects")
	require.Len(t, srv.Requests(), 1)
	assert.EqualValues(t, 1, srv.Requests()[0].Variables["first"])
}

func TestProjectAdd(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("AddProjectMutation", `{"data":{"createProject":{"__typename":"Project","id":"p9","name":"Tower audit","description":null,"type":{"id":"t1","name":"Rollout"},"location":null,"numberOfWorkOrders":0}}}`)

	res := run(t, srv, "", "project", "add", "--name", "Tower audit", "--type", "t1")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "created p9\n", res.stdout)
	input, ok := srv.Requests()[0].Variables["input"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Tower audit", input["name"])
	assert.NotContains(t, input, "description")
}

const searchReply = `{"data":{"searchForNode":{"edges":[
	{"node":{"__typename":"Location","id":"l1","name":"Tower 7"}},
	{"node":null}
]}}}`

func TestSearch(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("SearchForNodeQuery", searchReply)

	res := run(t, srv, "", "search", "tower", "--limit", "3")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "Location")
	assert.Contains(t, res.stdout, "Tower 7")
	assert.Equal(t, "tower", srv.Requests()[0].Variables["name"])
	assert.EqualValues(t, 3, srv.Requests()[0].Variables["first"])
}

func TestSearchInteractive(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("SearchForNodeQuery", searchReply)

	res := run(t, srv, "to\ntow\ntower\n", "search", "-i", "--debounce", "1h")
	require.NoError(t, res.err, res.stderr)

	reqs := srv.Requests()
	var names []interface{}
	for _, req := range reqs {
		names = append(names, req.Variables["name"])
	}
	assert.ElementsMatch(t, []interface{}{"to", "tower"}, names)
	assert.Contains(t, res.stdout, "> tower\n")
}

func TestIntrospect(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("IntrospectionQuery", `{"data":{"__schema":{
		"queryType":{"name":"Query"},
		"directives":[],
		"types":[
			{"kind":"SCALAR","name":"String"},
			{"kind":"OBJECT","name":"Query","fields":[
				{"name":"hello","args":[],"type":{"kind":"NON_NULL","ofType":{"kind":"SCALAR","name":"String"}}}
			]}
		]}}}`)

	res := run(t, srv, "", "introspect")
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "type Query {\n\thello: String!\n}\n\n", res.stdout)
}

func TestIntrospectErrorNamesEndpoint(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("IntrospectionQuery", `{"data":null,"errors":[{"message":"introspection disabled"}]}`)

	res := run(t, srv, "", "introspect")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), srv.URL)
	assert.Contains(t, res.err.Error(), "introspection disabled")
}

func TestConfigSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invctl.yaml")

	res := run(t, nil, "", "--config", path, "config", "set", "endpoint", "http://inventory.internal/graph/query")
	require.NoError(t, res.err, res.stderr)
	res = run(t, nil, "", "--config", path, "config", "set", "header.Authorization", "Bearer abc")
	require.NoError(t, res.err, res.stderr)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "endpoint: http://inventory.internal/graph/query")
	assert.Contains(t, string(b), "Authorization: Bearer abc")

	res = run(t, nil, "", "--config", path, "--endpoint", "http://flag-only", "config", "set", "timeout", "5s")
	require.NoError(t, res.err, res.stderr)
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "flag-only")
	assert.Contains(t, string(b), "timeout: 5s")

	res = run(t, nil, "", "--config", path, "config", "show")
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "# "+path+"\n")
	assert.Contains(t, res.stdout, "endpoint: http://inventory.internal/graph/query")
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invctl.yaml")
	res := run(t, nil, "", "--config", path, "config", "set", "colour", "red")
	require.Error(t, res.err)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestVersion(t *testing.T) {
	res := run(t, nil, "", "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "invctl dev"))
}
