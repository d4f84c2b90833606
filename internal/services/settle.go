package services

import (
	"context"
	"fmt"
	"sync"
)

// Outcome is the settled result of one branch of a Settle group.
// Read it only after the group's Wait returns.
type Outcome[T any] struct {
	Value T
	Err   error
}

// OK reports whether the branch succeeded.
func (o *Outcome[T]) OK() bool {
	return o.Err == nil
}

// Or returns the value, or fallback when the branch failed.
func (o *Outcome[T]) Or(fallback T) T {
	if o.Err != nil {
		return fallback
	}
	return o.Value
}

// Settle runs branches concurrently and waits for all of them. A failing
// or panicking branch never cancels its siblings.
type Settle struct {
	wg sync.WaitGroup
}

// Go starts fn as a branch of s.
func Go[T any](s *Settle, ctx context.Context, fn func(context.Context) (T, error)) *Outcome[T] {
	out := &Outcome[T]{}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				out.Err = fmt.Errorf("panic: %v", r)
			}
		}()

		out.Value, out.Err = fn(ctx)
	}()

	return out
}

// Wait blocks until every branch has settled.
func (s *Settle) Wait() {
	s.wg.Wait()
}
