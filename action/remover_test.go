package action

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-app/gqlclient"
	"github.com/inventory-app/gqlclient/graph"
	"github.com/inventory-app/gqlclient/internal/gqltest"
	"github.com/inventory-app/gqlclient/inventory"
	"github.com/inventory-app/gqlclient/store"
)

type fakeConfirmer struct {
	answer  bool
	err     error
	prompts []Prompt
}

func (c *fakeConfirmer) Confirm(_ context.Context, p Prompt) (bool, error) {
	c.prompts = append(c.prompts, p)
	return c.answer, c.err
}

type alerts struct {
	mu       sync.Mutex
	messages []string
}

func (a *alerts) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

func (a *alerts) get() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

func newEnv(t *testing.T, srv *gqltest.Server) *graph.Environment {
	t.Helper()
	env := graph.NewEnvironment(gqlclient.New(srv.URL, srv.Client()), nil, graph.WithTimeout(5*time.Second))
	t.Cleanup(env.Close)
	return env
}

const projectsPage = `{"data":{"projects":{"totalCount":2,"edges":[
	{"cursor":"c1","node":{"__typename":"Project","id":"project-1","name":"Fiber rollout","description":null,"type":{"id":"t1","name":"Rollout"},"location":null,"numberOfWorkOrders":0}},
	{"cursor":"c2","node":{"__typename":"Project","id":"project-2","name":"Tower audit","description":null,"type":{"id":"t1","name":"Rollout"},"location":null,"numberOfWorkOrders":2}}
],"pageInfo":{"hasNextPage":false,"endCursor":"c2"}}}}`

func loadProjects(t *testing.T, env *graph.Environment) {
	t.Helper()
	_, _, err := inventory.Projects(context.Background(), env, inventory.ProjectsVariables{})
	require.NoError(t, err)
	require.True(t, env.Store().Has("project-1"))
}

func TestDeleteProjectScenario(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("ProjectsQuery", projectsPage)
	srv.Respond("RemoveProjectMutation", `{"data":{"deleteProject":true}}`)
	env := newEnv(t, srv)
	loadProjects(t, env)

	confirmer := &fakeConfirmer{answer: true}
	var notified alerts
	remover := NewProjectRemover(env, confirmer, &notified)

	var removed []string
	err := remover.Remove(context.Background(), "project-1", func(id string) {
		removed = append(removed, id)
	})
	require.NoError(t, err)
	env.Close()

	require.Len(t, confirmer.prompts, 1)
	assert.Equal(t, "Are you sure you want to delete this project?", confirmer.prompts[0].Message)
	assert.Equal(t, "Delete", confirmer.prompts[0].ConfirmLabel)

	assert.Equal(t, 1, srv.Count("RemoveProjectMutation"))
	reqs := srv.Requests()
	assert.Equal(t, map[string]interface{}{"id": "project-1"}, reqs[len(reqs)-1].Variables)

	assert.Equal(t, []string{"project-1"}, removed)
	assert.Empty(t, notified.get())
	assert.Equal(t, Idle, remover.State())

	assert.False(t, env.Store().Has("project-1"))
	var nodes []store.DataID
	env.Store().Update(func(tx *store.Tx) {
		nodes = tx.EdgeNodes(tx.Connection(store.RootID, inventory.ProjectsConnectionKey, nil))
	})
	assert.Equal(t, []store.DataID{"project-2"}, nodes)
}

func TestDeleteProjectServerError(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("ProjectsQuery", projectsPage)
	srv.Respond("RemoveProjectMutation", `{"data":null,"errors":[{"message":"project has work orders"}]}`)
	env := newEnv(t, srv)
	loadProjects(t, env)

	var notified alerts
	remover := NewProjectRemover(env, &fakeConfirmer{answer: true}, &notified)

	called := false
	require.NoError(t, remover.Remove(context.Background(), "project-1", func(string) { called = true }))
	env.Close()

	assert.False(t, called)
	assert.Equal(t, []string{"Failed removing project"}, notified.get())
	assert.True(t, env.Store().Has("project-1"), "failed removal keeps the cached node")
	assert.Equal(t, Idle, remover.State())
}

func TestDeleteProjectTransportError(t *testing.T) {
	srv := gqltest.NewServer(t)
	env := newEnv(t, srv)
	srv.Close()

	var notified alerts
	remover := NewProjectRemover(env, &fakeConfirmer{answer: true}, &notified)

	called := false
	require.NoError(t, remover.Remove(context.Background(), "project-1", func(string) { called = true }))
	env.Close()

	assert.False(t, called)
	assert.Equal(t, []string{"Failed removing project"}, notified.get())
}

func TestDeclineDoesNotDispatch(t *testing.T) {
	srv := gqltest.NewServer(t)
	env := newEnv(t, srv)

	dispatched := 0
	var notified alerts
	remover := NewRemover(env, &fakeConfirmer{answer: false}, &notified, RemoverConfig[bool]{
		Prompt:         Prompt{Message: "Are you sure?"},
		FailureMessage: "failed",
		Dispatch: func(*graph.Environment, string, graph.Callbacks[bool], graph.Updater[bool]) {
			dispatched++
		},
	})

	require.NoError(t, remover.Remove(context.Background(), "x", func(string) {
		t.Error("declined removal must not report removal")
	}))
	assert.Equal(t, 0, dispatched)
	assert.Equal(t, Idle, remover.State())
	assert.Empty(t, notified.get())
}

func TestConfirmSuccessWithMockDispatch(t *testing.T) {
	srv := gqltest.NewServer(t)
	env := newEnv(t, srv)

	var notified alerts
	remover := NewRemover(env, &fakeConfirmer{answer: true}, &notified, RemoverConfig[bool]{
		FailureMessage: "failed",
		Dispatch: func(_ *graph.Environment, id string, cb graph.Callbacks[bool], _ graph.Updater[bool]) {
			assert.Equal(t, "wo-9", id)
			cb.OnCompleted(true, nil)
		},
	})

	removed := 0
	require.NoError(t, remover.Remove(context.Background(), "wo-9", func(string) { removed++ }))
	assert.Equal(t, 1, removed)
	assert.Empty(t, notified.get())
}

func TestOnlyFirstErrorIsExamined(t *testing.T) {
	srv := gqltest.NewServer(t)
	env := newEnv(t, srv)

	var notified alerts
	remover := NewRemover(env, &fakeConfirmer{answer: true}, &notified, RemoverConfig[bool]{
		FailureMessage: "failed",
		Dispatch: func(_ *graph.Environment, _ string, cb graph.Callbacks[bool], _ graph.Updater[bool]) {
			cb.OnCompleted(false, []gqlclient.Error{{Message: "first"}, {Message: "second"}})
		},
	})

	require.NoError(t, remover.Remove(context.Background(), "x", func(string) {
		t.Error("unexpected removal")
	}))
	assert.Equal(t, []string{"failed"}, notified.get())
}

func TestConfirmErrorReturnsToIdle(t *testing.T) {
	srv := gqltest.NewServer(t)
	env := newEnv(t, srv)

	remover := NewWorkOrderRemover(env, &fakeConfirmer{err: context.Canceled}, NotifierFunc(func(string) {
		t.Error("no alert expected")
	}))
	err := remover.Remove(context.Background(), "wo-1", nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, Idle, remover.State())
	assert.Equal(t, 0, len(srv.Requests()))
}

func TestRemoveWhileConfirmingIsBusy(t *testing.T) {
	srv := gqltest.NewServer(t)
	env := newEnv(t, srv)

	entered := make(chan struct{})
	release := make(chan struct{})
	confirmer := ConfirmFunc(func(ctx context.Context, p Prompt) (bool, error) {
		close(entered)
		<-release
		return false, nil
	})
	remover := NewProjectTypeRemover(env, confirmer, NotifierFunc(func(string) {}))

	done := make(chan error, 1)
	go func() {
		done <- remover.Remove(context.Background(), "pt-1", nil)
	}()
	<-entered
	assert.Equal(t, Confirming, remover.State())
	assert.ErrorIs(t, remover.Remove(context.Background(), "pt-2", nil), ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, Idle, remover.State())
}

func TestProjectTypeRemoverMessages(t *testing.T) {
	srv := gqltest.NewServer(t)
	srv.Respond("RemoveProjectTypeMutation", `{"data":{"deleteProjectType":false},"errors":[{"message":"type in use"}]}`)
	env := newEnv(t, srv)

	confirmer := &fakeConfirmer{answer: true}
	var notified alerts
	remover := NewProjectTypeRemover(env, confirmer, &notified)
	require.NoError(t, remover.Remove(context.Background(), "pt-1", nil))
	env.Close()

	assert.Equal(t, "Are you sure you want to delete this project template?", confirmer.prompts[0].Message)
	assert.Equal(t, []string{"Failed removing project template"}, notified.get())
}
