// Package singleflight collapses concurrent calls that share a key.
package singleflight

import (
	"sync"
)

// Group manages in-flight calls keyed by string. The zero value is not
// usable; construct with New.
type Group[T any] struct {
	mu sync.Mutex
	m  map[string]*call[T]
}

type call[T any] struct {
	wg    sync.WaitGroup
	val   T
	err   error
	dups  int
	chans []chan<- Result[T]
}

// Result is what DoChan delivers.
type Result[T any] struct {
	Val    T
	Err    error
	Shared bool
}

// New creates a Group.
func New[T any]() *Group[T] {
	return &Group[T]{
		m: make(map[string]*call[T]),
	}
}

// Do executes fn once per key at a time. Callers arriving while fn runs wait
// for it and receive the same result; shared reports whether the result was
// handed to more than one caller.
func (g *Group[T]) Do(key string, fn func() (T, error)) (val T, err error, shared bool) {
	g.mu.Lock()
	if c, ok := g.m[key]; ok {
		c.dups++
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &call[T]{}
	c.wg.Add(1)
	g.m[key] = c
	g.mu.Unlock()

	g.run(key, c, fn)
	return c.val, c.err, c.dups > 0
}

// DoChan is like Do but runs fn in its own goroutine and delivers the
// result on the returned channel, so a caller can stop waiting without
// affecting the call or the other callers.
func (g *Group[T]) DoChan(key string, fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)

	g.mu.Lock()
	if c, ok := g.m[key]; ok {
		c.dups++
		c.chans = append(c.chans, ch)
		g.mu.Unlock()
		return ch
	}

	c := &call[T]{chans: []chan<- Result[T]{ch}}
	c.wg.Add(1)
	g.m[key] = c
	g.mu.Unlock()

	go g.run(key, c, fn)
	return ch
}

// TryDo runs fn only when no call for key is in flight. When one is, it
// returns ErrInProgress immediately and ran is false.
func (g *Group[T]) TryDo(key string, fn func() (T, error)) (val T, err error, ran bool) {
	g.mu.Lock()
	if _, ok := g.m[key]; ok {
		g.mu.Unlock()
		var zero T
		return zero, ErrInProgress, false
	}

	c := &call[T]{}
	c.wg.Add(1)
	g.m[key] = c
	g.mu.Unlock()

	g.run(key, c, fn)
	return c.val, c.err, true
}

// InFlight reports whether a call for key is currently running.
func (g *Group[T]) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.m[key]
	return ok
}

func (g *Group[T]) run(key string, c *call[T], fn func() (T, error)) {
	defer func() {
		g.mu.Lock()
		if g.m[key] == c {
			delete(g.m, key)
		}
		chans := c.chans
		g.mu.Unlock()
		c.wg.Done()

		for _, ch := range chans {
			ch <- Result[T]{Val: c.val, Err: c.err, Shared: c.dups > 0}
		}
	}()
	c.val, c.err = fn()
}
