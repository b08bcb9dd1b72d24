package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inventory-app/gqlclient/action"
	"github.com/inventory-app/gqlclient/graph"
)

// maxConcurrentRemovals bounds how many removals are confirmed and
// submitted at once.
const maxConcurrentRemovals = 4

func newDeleteCmd[R any](a *app, noun string, newRemover func(*graph.Environment, action.Confirmer, action.Notifier) *action.Remover[R]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: fmt.Sprintf("Delete one or more %ss", noun),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, a, noun, args, newRemover)
		},
	}
}

func runDelete[R any](cmd *cobra.Command, a *app, noun string, ids []string, newRemover func(*graph.Environment, action.Confirmer, action.Notifier) *action.Remover[R]) error {
	env, err := a.environment()
	if err != nil {
		return err
	}

	prompts := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), a.yes)
	alerts := &alertSink{out: cmd.ErrOrStderr()}

	var (
		mu      sync.Mutex
		removed []string
	)
	onRemoved := func(id string) {
		mu.Lock()
		removed = append(removed, id)
		mu.Unlock()
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentRemovals)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			r := newRemover(env, prompts.forID(id), alerts)
			return r.Remove(ctx, id, onRemoved)
		})
	}
	err = g.Wait()
	// Close waits for every submitted removal to report back.
	env.Close()
	if err != nil {
		return err
	}

	a.log.WithField("removed", len(removed)).Debug("delete finished")
	if n := alerts.failures(); n > 0 {
		return fmt.Errorf("%d of %d %ss could not be deleted", n, len(ids), noun)
	}
	return nil
}
