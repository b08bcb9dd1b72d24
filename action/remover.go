// Package action holds the user-level flows built on top of mutation
// dispatch: confirmation-gated deletes and the search typeahead.
package action

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/inventory-app/gqlclient"
	"github.com/inventory-app/gqlclient/graph"
	"github.com/inventory-app/gqlclient/store"
)

// ErrBusy is returned by Remove while a previous removal is still being
// confirmed or dispatched.
var ErrBusy = errors.New("action: removal already in progress")

// Prompt is what the confirmation dialog shows.
type Prompt struct {
	Message      string
	ConfirmLabel string
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// Notifier shows a user-visible message. It must not block.
type Notifier interface {
	Alert(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) {
	f(message)
}

type State int

const (
	Idle State = iota
	Confirming
	Dispatching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Confirming:
		return "confirming"
	case Dispatching:
		return "dispatching"
	default:
		return "unknown"
	}
}

// DispatchFunc submits the removal mutation for id.
type DispatchFunc[R any] func(env *graph.Environment, id string, cb graph.Callbacks[R], updater graph.Updater[R])

type RemoverConfig[R any] struct {
	Prompt         Prompt
	FailureMessage string
	Dispatch       DispatchFunc[R]
	// Removed reports whether the response confirms the removal. The
	// cached node is only dropped when it does. Nil means always.
	Removed func(resp R) bool
	Log     logrus.FieldLogger
}

// Remover runs the confirm-then-delete flow for one kind of entity. It is
// reusable: every invocation ends back in Idle.
type Remover[R any] struct {
	env       *graph.Environment
	confirmer Confirmer
	notifier  Notifier
	cfg       RemoverConfig[R]
	log       logrus.FieldLogger

	mu    sync.Mutex
	state State
}

func NewRemover[R any](env *graph.Environment, confirmer Confirmer, notifier Notifier, cfg RemoverConfig[R]) *Remover[R] {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Remover[R]{
		env:       env,
		confirmer: confirmer,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
	}
}

func (r *Remover[R]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Remover[R]) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// Remove asks for confirmation and, if given, dispatches the removal of id.
// It returns once the mutation is submitted; onRemoved is called on the
// environment loop when the server confirms the removal. Declining is not
// an error.
func (r *Remover[R]) Remove(ctx context.Context, id string, onRemoved func(id string)) error {
	r.mu.Lock()
	if r.state != Idle {
		r.mu.Unlock()
		return ErrBusy
	}
	r.state = Confirming
	r.mu.Unlock()

	log := r.log.WithField("id", id)

	ok, err := r.confirmer.Confirm(ctx, r.cfg.Prompt)
	if err != nil {
		r.setState(Idle)
		return err
	}
	if !ok {
		log.Debug("removal declined")
		r.setState(Idle)
		return nil
	}

	r.setState(Dispatching)
	r.cfg.Dispatch(r.env, id, graph.Callbacks[R]{
		OnCompleted: func(resp R, errs []gqlclient.Error) {
			r.setState(Idle)
			if firstError(errs) != nil {
				log.WithField("error", errs[0].Message).Warn("removal failed")
				r.alert()
				return
			}
			if onRemoved != nil {
				onRemoved(id)
			}
		},
		OnError: func(err error) {
			r.setState(Idle)
			log.WithError(err).Warn("removal failed")
			r.alert()
		},
	}, func(tx *store.Tx, resp R) {
		if r.cfg.Removed != nil && !r.cfg.Removed(resp) {
			return
		}
		tx.Detach(store.DataID(id))
		tx.Delete(store.DataID(id))
	})
	return nil
}

func (r *Remover[R]) alert() {
	if r.notifier != nil {
		r.notifier.Alert(r.cfg.FailureMessage)
	}
}

// firstError returns the first GraphQL error. Later entries are not
// examined when deciding whether an action failed.
// TODO: decide whether errs[1:] should also fail the action once the
// backend documents which errors are warnings.
func firstError(errs []gqlclient.Error) *gqlclient.Error {
	if len(errs) == 0 {
		return nil
	}
	return &errs[0]
}
