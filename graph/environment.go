package graph

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inventory-app/gqlclient"
	"github.com/inventory-app/gqlclient/store"
)

var (
	// ErrClosed is delivered to callers dispatching on a closed environment.
	ErrClosed = errors.New("graph: environment closed")
	// ErrNotMutation is delivered when Commit is given a query descriptor.
	ErrNotMutation = errors.New("graph: descriptor is not a mutation")
)

const DefaultTimeout = 30 * time.Second

// Environment ties a client to the shared store and runs the loop on which
// responses are applied and callbacks are invoked. Work on the loop runs one
// item at a time, to completion.
type Environment struct {
	client  *gqlclient.Client
	store   *store.Store
	log     logrus.FieldLogger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	stopping bool
	closed   bool
	pending  []func()
	inflight sync.WaitGroup
	wake     chan struct{}
	done     chan struct{}
}

type EnvironmentOption func(*Environment)

func WithLogger(l logrus.FieldLogger) EnvironmentOption {
	return func(env *Environment) {
		env.log = l
	}
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) EnvironmentOption {
	return func(env *Environment) {
		env.timeout = d
	}
}

// NewEnvironment starts the loop. A nil store creates a fresh one.
func NewEnvironment(client *gqlclient.Client, s *store.Store, opts ...EnvironmentOption) *Environment {
	if s == nil {
		s = store.New()
	}
	env := &Environment{
		client:  client,
		store:   s,
		log:     logrus.StandardLogger(),
		timeout: DefaultTimeout,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(env)
	}
	env.ctx, env.cancel = context.WithCancel(context.Background())
	go env.loop()
	return env
}

func (env *Environment) Store() *store.Store {
	return env.store
}

func (env *Environment) Client() *gqlclient.Client {
	return env.client
}

func (env *Environment) loop() {
	defer close(env.done)
	for range env.wake {
		for {
			env.mu.Lock()
			if len(env.pending) == 0 {
				closed := env.closed
				env.mu.Unlock()
				if closed {
					return
				}
				break
			}
			fn := env.pending[0]
			env.pending[0] = nil
			env.pending = env.pending[1:]
			env.mu.Unlock()

			fn()
		}
	}
}

func (env *Environment) signal() {
	select {
	case env.wake <- struct{}{}:
	default:
	}
}

// Post schedules fn on the loop after the work already queued. It returns
// false once Close has been called.
func (env *Environment) Post(fn func()) bool {
	env.mu.Lock()
	if env.stopping {
		env.mu.Unlock()
		return false
	}
	env.pending = append(env.pending, fn)
	env.mu.Unlock()
	env.signal()
	return true
}

// begin registers an in-flight dispatch, or reports that the environment
// is closing.
func (env *Environment) begin() bool {
	env.mu.Lock()
	defer env.mu.Unlock()
	if env.stopping {
		return false
	}
	env.inflight.Add(1)
	return true
}

// finish queues fn and ends the in-flight dispatch. The loop keeps running
// until every begin has been matched.
func (env *Environment) finish(fn func()) {
	env.mu.Lock()
	env.pending = append(env.pending, fn)
	env.mu.Unlock()
	env.signal()
	env.inflight.Done()
}

func (env *Environment) requestContext() (context.Context, context.CancelFunc) {
	if env.timeout <= 0 {
		return env.ctx, func() {}
	}
	return context.WithTimeout(env.ctx, env.timeout)
}

// Close stops accepting work, waits for in-flight dispatches to deliver
// their callbacks and stops the loop.
func (env *Environment) Close() {
	env.mu.Lock()
	if env.stopping {
		env.mu.Unlock()
		<-env.done
		return
	}
	env.stopping = true
	env.mu.Unlock()

	env.inflight.Wait()
	env.mu.Lock()
	env.closed = true
	env.mu.Unlock()
	env.signal()
	<-env.done
	env.cancel()
}
