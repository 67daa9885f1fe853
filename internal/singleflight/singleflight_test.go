package singleflight

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDo(t *testing.T) {
	g := New[string]()

	val, err, shared := g.Do("key1", func() (string, error) {
		return "hello", nil
	})

	if err != nil {
		t.Errorf("Do() returned error: %v", err)
	}
	if val != "hello" {
		t.Errorf("Do() returned %v, want hello", val)
	}
	if shared {
		t.Error("single caller should not report shared")
	}
}

func TestDoError(t *testing.T) {
	g := New[int]()
	expectedErr := errors.New("test error")

	_, err, _ := g.Do("key1", func() (int, error) {
		return 0, expectedErr
	})

	if !errors.Is(err, expectedErr) {
		t.Errorf("Do() returned error %v, want %v", err, expectedErr)
	}
}

func TestDoDuplicateCalls(t *testing.T) {
	g := New[int]()

	var calls int32
	release := make(chan struct{})
	fn := func() (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, _ := g.Do("same", fn)
			results[i] = v
		}(i)
	}

	// Give the goroutines time to pile up behind the first caller.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("fn ran %d times, want 1", got)
	}
	for i, v := range results {
		if v != 42 {
			t.Errorf("results[%d] = %d, want 42", i, v)
		}
	}
}

func TestTryDoInProgress(t *testing.T) {
	g := New[struct{}]()
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = g.TryDo("drain", func() (struct{}, error) {
			close(started)
			<-release
			return struct{}{}, nil
		})
	}()

	<-started
	if !g.InFlight("drain") {
		t.Error("InFlight() = false while call running")
	}

	_, err, ran := g.TryDo("drain", func() (struct{}, error) {
		t.Error("second TryDo must not run")
		return struct{}{}, nil
	})
	if ran {
		t.Error("TryDo ran while another call was in flight")
	}
	if !errors.Is(err, ErrInProgress) {
		t.Errorf("TryDo error = %v, want ErrInProgress", err)
	}
	close(release)
}

func TestKeyReleasedAfterCompletion(t *testing.T) {
	g := New[int]()

	_, _, _ = g.Do("k", func() (int, error) { return 1, nil })
	if g.InFlight("k") {
		t.Fatal("key still registered after completion")
	}

	_, _, ran := g.TryDo("k", func() (int, error) { return 2, nil })
	if !ran {
		t.Error("TryDo did not run after previous call completed")
	}
}

func TestDoChanAbandonedWaiter(t *testing.T) {
	g := New[int]()

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func() (int, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return 7, nil
	}

	// The first caller walks away without reading its channel.
	_ = g.DoChan("k", fn)
	<-started
	second := g.DoChan("k", fn)
	close(release)

	select {
	case res := <-second:
		if res.Err != nil || res.Val != 7 {
			t.Errorf("DoChan result = (%d, %v), want (7, nil)", res.Val, res.Err)
		}
		if !res.Shared {
			t.Error("Shared = false for a joined call")
		}
	case <-time.After(time.Second):
		t.Fatal("second waiter never received a result")
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("fn ran %d times, want 1", got)
	}
	if g.InFlight("k") {
		t.Error("key still registered after completion")
	}
}
