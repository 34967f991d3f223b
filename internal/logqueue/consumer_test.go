package logqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu      sync.Mutex
	stored  []int
	failOn  int
	failErr error
}

func (s *recordingSink) Store(_ context.Context, record int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil && record == s.failOn {
		return s.failErr
	}
	s.stored = append(s.stored, record)
	return nil
}

func (s *recordingSink) snapshot() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.stored...)
}

func waitDone(t *testing.T, c *Consumer[int]) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop in time")
	}
}

func TestConsumerDrainsQueue(t *testing.T) {
	q := New[int](8)
	sink := &recordingSink{}
	c := NewConsumer("test", q, sink)

	go c.Run(context.Background())

	for i := 1; i <= 5; i++ {
		q.Enqueue(i)
	}
	q.Close()
	waitDone(t, c)

	got := sink.snapshot()
	if len(got) != 5 {
		t.Fatalf("stored %d records, want 5: %v", len(got), got)
	}
	for i, v := range got {
		if v != i+1 {
			t.Errorf("stored[%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestConsumerContinuesAfterSinkError(t *testing.T) {
	q := New[int](8)
	sink := &recordingSink{failOn: 2, failErr: errors.New("db down")}
	c := NewConsumer("test", q, sink)

	go c.Run(context.Background())

	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	q.Close()
	waitDone(t, c)

	got := sink.snapshot()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("stored %v, want [1 3]", got)
	}
}

func TestConsumerStopsOnContextCancel(t *testing.T) {
	q := New[int](8)
	sink := &recordingSink{}
	c := NewConsumer("test", q, sink)

	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)

	cancel()
	waitDone(t, c)
}

func TestSinkFuncAdapter(t *testing.T) {
	var got int
	sink := SinkFunc[int](func(_ context.Context, record int) error {
		got = record
		return nil
	})
	if err := sink.Store(context.Background(), 42); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if got != 42 {
		t.Errorf("record = %d, want 42", got)
	}
}
