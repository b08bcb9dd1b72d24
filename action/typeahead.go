package action

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inventory-app/gqlclient/graph"
	"github.com/inventory-app/gqlclient/internal/debounce"
	"github.com/inventory-app/gqlclient/inventory"
)

const defaultSuggestionLimit = 10

// SuggestionsFunc receives search results on the environment loop. nodes is
// nil when the term was cleared.
type SuggestionsFunc func(term string, nodes []inventory.SearchNode, err error)

// Typeahead turns search-box input into debounced search requests. Only the
// results of the latest issued search are delivered.
type Typeahead struct {
	env       *graph.Environment
	debouncer *debounce.Debouncer
	deliver   SuggestionsFunc
	limit     int32
	log       logrus.FieldLogger

	seq atomic.Uint64

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

type TypeaheadOption func(*Typeahead)

// WithWindow overrides the debounce window.
func WithWindow(d time.Duration) TypeaheadOption {
	return func(t *Typeahead) {
		t.debouncer = debounce.New(d)
	}
}

func WithLimit(n int32) TypeaheadOption {
	return func(t *Typeahead) {
		t.limit = n
	}
}

func WithTypeaheadLogger(l logrus.FieldLogger) TypeaheadOption {
	return func(t *Typeahead) {
		t.log = l
	}
}

func NewTypeahead(env *graph.Environment, deliver SuggestionsFunc, opts ...TypeaheadOption) *Typeahead {
	t := &Typeahead{
		env:       env,
		debouncer: debounce.New(debounce.DefaultWindow),
		deliver:   deliver,
		limit:     defaultSuggestionLimit,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Input reports the current content of the search box.
func (t *Typeahead) Input(ctx context.Context, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		t.debouncer.Cancel()
		t.seq.Add(1)
		t.env.Post(func() { t.deliver("", nil, nil) })
		return
	}
	t.debouncer.Trigger(func() {
		t.search(ctx, term)
	})
}

func (t *Typeahead) search(ctx context.Context, term string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	seq := t.seq.Add(1)
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		resp, errs, err := inventory.SearchForNode(ctx, t.env, inventory.SearchForNodeVariables{Name: term, First: t.limit})
		if err == nil && len(errs) > 0 {
			err = &errs[0]
		}
		if seq != t.seq.Load() {
			t.log.WithField("term", term).Debug("dropping stale suggestions")
			return
		}
		if err != nil {
			t.log.WithError(err).WithField("term", term).Warn("search failed")
		}
		nodes := resp.Nodes()
		t.env.Post(func() {
			if seq == t.seq.Load() {
				t.deliver(term, nodes, err)
			}
		})
	}()
}

// Flush issues the pending trailing search, if any, and waits for every
// issued search to finish.
func (t *Typeahead) Flush() {
	t.debouncer.Flush()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.wg.Wait()
}

// Close drops pending input and waits for issued searches to finish. No
// search is issued after Close.
func (t *Typeahead) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()

	t.debouncer.Cancel()
	t.wg.Wait()
}
