package concurrency

import (
	"errors"
	"sync"
	"testing"
)

func TestGetLock_SameKeyReturnsSameMutex(t *testing.T) {
	lm := NewLockManager()

	a := lm.GetLock("stats:user:alice")
	b := lm.GetLock("stats:user:alice")

	if a != b {
		t.Error("Expected same mutex for same key")
	}
}

func TestGetLock_DifferentKeysReturnDifferentMutexes(t *testing.T) {
	lm := NewLockManager()

	a := lm.GetLock("stats:user:alice")
	b := lm.GetLock("stats:user:bob")

	if a == b {
		t.Error("Expected different mutexes for different keys")
	}
}

func TestWithLock_SerializesSameKey(t *testing.T) {
	lm := NewLockManager()

	const workers = 100
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = lm.WithLock("counter", func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("Expected counter %d, got %d", workers, counter)
	}
}

func TestWithLock_PropagatesError(t *testing.T) {
	lm := NewLockManager()

	want := errors.New("boom")
	err := lm.WithLock("key", func() error {
		return want
	})

	if !errors.Is(err, want) {
		t.Errorf("Expected %v, got %v", want, err)
	}
}
