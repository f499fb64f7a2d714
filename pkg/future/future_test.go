package future

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

func TestResolveOnce(t *testing.T) {
	f, resolve, reject := New[int]()

	if _, ok, _ := f.Result(); ok {
		t.Fatal("expected pending future")
	}

	resolve(1)
	resolve(2)
	reject(errors.New("late"))

	v, err := f.Wait(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
}

func TestRejected(t *testing.T) {
	want := errors.New("boom")
	f := Rejected[string](want)

	select {
	case <-f.Done():
	default:
		t.Fatal("expected completed future")
	}

	_, ok, err := f.Result()
	if !ok {
		t.Fatal("expected result")
	}
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestWaitContextCancelled(t *testing.T) {
	f, _, _ := New[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestThen(t *testing.T) {
	t.Run("Maps", func(t *testing.T) {
		f := Then(Resolved(42), func(v int) (string, error) {
			return strconv.Itoa(v), nil
		})
		v, err := f.Wait(context.Background())
		if err != nil || v != "42" {
			t.Errorf("got %q, %v", v, err)
		}
	})

	t.Run("PassesErrorThrough", func(t *testing.T) {
		want := errors.New("remote")
		called := false
		f := Then(Rejected[int](want), func(v int) (string, error) {
			called = true
			return "", nil
		})
		_, err := f.Wait(context.Background())
		if !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
		if called {
			t.Error("fn must not run on error")
		}
	})

	t.Run("FnError", func(t *testing.T) {
		want := errors.New("convert")
		f := Then(Resolved(1), func(int) (int, error) { return 0, want })
		_, err := f.Wait(context.Background())
		if !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	})
}

func TestOnDone(t *testing.T) {
	f, resolve, _ := New[int]()
	got := make(chan int, 1)
	f.OnDone(func(v int, err error) { got <- v })
	resolve(7)

	select {
	case v := <-got:
		if v != 7 {
			t.Errorf("expected 7, got %d", v)
		}
	case <-time.After(time.Second):
		t.Fatal("callback not invoked")
	}
}
