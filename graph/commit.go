package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/inventory-app/gqlclient"
	"github.com/inventory-app/gqlclient/store"
)

// Callbacks receive the single terminal notification of a dispatch. Both
// are optional. OnCompleted gets the decoded response and the GraphQL
// errors returned alongside it, which may be empty.
type Callbacks[R any] struct {
	OnCompleted func(resp R, errs []gqlclient.Error)
	OnError     func(err error)
}

// Updater mutates the cache when a response with data arrives. It runs in
// the same transaction that writes the response, before OnCompleted.
type Updater[R any] func(tx *store.Tx, resp R)

// Commit submits one mutation and returns immediately. It never retries,
// batches or deduplicates: every call is an independent request. In-flight
// mutations cannot be cancelled and always deliver exactly one callback on
// the environment loop.
func Commit[V, R any](env *Environment, d *Descriptor[V, R], vars V, cb Callbacks[R], updater Updater[R]) {
	log := env.log.WithField("operation", d.name)

	if d.kind != ast.Mutation {
		fail(env, d.name, cb, ErrNotMutation)
		return
	}
	if !env.begin() {
		log.Warn("dispatch on closed environment")
		if cb.OnError != nil {
			cb.OnError(ErrClosed)
		}
		dispatchTotal.WithLabelValues(d.name, outcomeFailed).Inc()
		return
	}

	op, err := newOperation(d, vars)
	if err != nil {
		env.finish(func() {
			dispatchFailed(log, d.name, cb, err)
		})
		return
	}

	dispatchInflight.WithLabelValues(d.name).Inc()
	go func() {
		start := time.Now()
		ctx, cancel := env.requestContext()
		resp, err := env.client.Do(ctx, op)
		cancel()
		dispatchInflight.WithLabelValues(d.name).Dec()
		dispatchDuration.WithLabelValues(d.name).Observe(time.Since(start).Seconds())

		env.finish(func() {
			if err != nil {
				dispatchFailed(log, d.name, cb, err)
				return
			}
			apply(env, log, d, resp, cb, updater)
		})
	}()
}

func fail[R any](env *Environment, name string, cb Callbacks[R], err error) {
	if !env.Post(func() { dispatchFailed(env.log.WithField("operation", name), name, cb, err) }) {
		dispatchFailed(env.log.WithField("operation", name), name, cb, err)
	}
}

func dispatchFailed[R any](log logrus.FieldLogger, name string, cb Callbacks[R], err error) {
	dispatchTotal.WithLabelValues(name, outcomeFailed).Inc()
	log.WithError(err).Warn("dispatch failed")
	if cb.OnError != nil {
		cb.OnError(err)
	}
}

// apply runs on the loop.
func apply[V, R any](env *Environment, log logrus.FieldLogger, d *Descriptor[V, R], resp *gqlclient.Response, cb Callbacks[R], updater Updater[R]) {
	var out R
	var payload map[string]interface{}
	if resp.HasData() {
		if err := json.Unmarshal(resp.Data, &out); err != nil {
			dispatchFailed(log, d.name, cb, fmt.Errorf("failed to decode %s response: %w", d.name, err))
			return
		}
		dec := json.NewDecoder(bytes.NewReader(resp.Data))
		dec.UseNumber()
		if err := dec.Decode(&payload); err != nil {
			dispatchFailed(log, d.name, cb, fmt.Errorf("failed to decode %s response: %w", d.name, err))
			return
		}
		env.store.Update(func(tx *store.Tx) {
			tx.Publish(store.RootID, payload, d.handles)
			if updater != nil {
				updater(tx, out)
			}
		})
	}

	outcome := outcomeCompleted
	if len(resp.Errors) > 0 {
		outcome = outcomeCompletedWithErrors
		log.WithField("errors", len(resp.Errors)).Warn("dispatch completed with errors")
	} else {
		log.Debug("dispatch completed")
	}
	dispatchTotal.WithLabelValues(d.name, outcome).Inc()

	if cb.OnCompleted != nil {
		cb.OnCompleted(out, resp.Errors)
	}
}

func newOperation[V, R any](d *Descriptor[V, R], vars V) (*gqlclient.Operation, error) {
	op := gqlclient.NewOperation(d.query)
	op.SetName(d.name)

	b, err := json.Marshal(vars)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s variables: %w", d.name, err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%s variables must encode to a JSON object: %w", d.name, err)
	}
	op.SetVars(m)
	return op, nil
}

// Await commits the mutation and waits for its outcome. Cancelling ctx
// stops the wait only; the mutation still completes and is applied.
func Await[V, R any](ctx context.Context, env *Environment, d *Descriptor[V, R], vars V, updater Updater[R]) (R, []gqlclient.Error, error) {
	type result struct {
		resp R
		errs []gqlclient.Error
		err  error
	}
	ch := make(chan result, 1)
	Commit(env, d, vars, Callbacks[R]{
		OnCompleted: func(resp R, errs []gqlclient.Error) {
			ch <- result{resp: resp, errs: errs}
		},
		OnError: func(err error) {
			ch <- result{err: err}
		},
	}, updater)

	select {
	case r := <-ch:
		return r.resp, r.errs, r.err
	case <-ctx.Done():
		var zero R
		return zero, nil, ctx.Err()
	}
}

// Fetch runs a query and writes its data into the store. The request runs
// on the caller's goroutine; the store write happens on the loop.
func Fetch[V, R any](ctx context.Context, env *Environment, d *Descriptor[V, R], vars V) (R, []gqlclient.Error, error) {
	var out R
	if d.kind != ast.Query {
		return out, nil, fmt.Errorf("graph: %s is a %s, not a query", d.name, d.kind)
	}
	op, err := newOperation(d, vars)
	if err != nil {
		return out, nil, err
	}
	if env.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, env.timeout)
		defer cancel()
	}

	resp, err := env.client.Do(ctx, op)
	if err != nil {
		return out, nil, err
	}
	if !resp.HasData() {
		return out, resp.Errors, nil
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return out, resp.Errors, fmt.Errorf("failed to decode %s response: %w", d.name, err)
	}
	var payload map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(resp.Data))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return out, resp.Errors, fmt.Errorf("failed to decode %s response: %w", d.name, err)
	}

	published := make(chan struct{})
	if !env.Post(func() {
		defer close(published)
		env.store.Update(func(tx *store.Tx) {
			tx.Publish(store.RootID, payload, d.handles)
		})
	}) {
		return out, resp.Errors, ErrClosed
	}
	select {
	case <-published:
	case <-ctx.Done():
		return out, resp.Errors, ctx.Err()
	}
	return out, resp.Errors, nil
}
