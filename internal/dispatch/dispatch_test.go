package dispatch

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestLocalModeNeverCallsRemote(t *testing.T) {
	d := New(ModeLocal, 0, nil)

	remoteCalls := 0
	result, err := Call(context.Background(), d, "op",
		func(ctx context.Context) (string, error) {
			remoteCalls++
			return "remote", nil
		},
		func(ctx context.Context) (string, error) {
			return "local", nil
		})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if result != "local" {
		t.Fatalf("expected local result, got %q", result)
	}
	if remoteCalls != 0 {
		t.Fatalf("remote invoked %d times in local mode", remoteCalls)
	}
}

func TestRemoteSuccessSkipsLocal(t *testing.T) {
	d := New(ModeRemote, 0, nil)

	localCalls := 0
	result, err := Call(context.Background(), d, "op",
		func(ctx context.Context) (int, error) { return 42, nil },
		func(ctx context.Context) (int, error) {
			localCalls++
			return 0, nil
		})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if result != 42 {
		t.Fatalf("expected remote result, got %d", result)
	}
	if localCalls != 0 {
		t.Fatalf("local invoked %d times after remote success", localCalls)
	}
}

func TestRemoteFailureFallsBackToLocal(t *testing.T) {
	d := New(ModeRemote, 0, nil)

	remoteCalls := 0
	result, err := Call(context.Background(), d, "op",
		func(ctx context.Context) (string, error) {
			remoteCalls++
			return "", fmt.Errorf("gateway down")
		},
		func(ctx context.Context) (string, error) { return "local", nil })
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if result != "local" {
		t.Fatalf("expected local fallback result, got %q", result)
	}
	if remoteCalls != 1 {
		t.Fatalf("remote must be attempted exactly once, got %d", remoteCalls)
	}
}

func TestDisabledFallbackSurfacesRemoteError(t *testing.T) {
	d := New(ModeRemote, 0, nil)
	d.DisableFallback()

	remoteErr := fmt.Errorf("gateway down")
	localCalls := 0
	_, err := Call(context.Background(), d, "op",
		func(ctx context.Context) (string, error) { return "", remoteErr },
		func(ctx context.Context) (string, error) {
			localCalls++
			return "local", nil
		})
	if err != remoteErr {
		t.Fatalf("expected the remote error, got %v", err)
	}
	if localCalls != 0 {
		t.Fatalf("local invoked %d times with fallback disabled", localCalls)
	}
}

func TestBothBackendsFailingReturnsLocalError(t *testing.T) {
	d := New(ModeRemote, 0, nil)

	localErr := fmt.Errorf("local broken too")
	_, err := Call(context.Background(), d, "op",
		func(ctx context.Context) (string, error) { return "", fmt.Errorf("remote broken") },
		func(ctx context.Context) (string, error) { return "", localErr })
	if err != localErr {
		t.Fatalf("expected the local error as final outcome, got %v", err)
	}
}

func TestFallbackIsSequential(t *testing.T) {
	d := New(ModeRemote, 0, nil)

	var order []string
	_, err := Call(context.Background(), d, "op",
		func(ctx context.Context) (string, error) {
			order = append(order, "remote")
			return "", fmt.Errorf("fail")
		},
		func(ctx context.Context) (string, error) {
			order = append(order, "local")
			return "ok", nil
		})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if len(order) != 2 || order[0] != "remote" || order[1] != "local" {
		t.Fatalf("expected strict remote-then-local order, got %v", order)
	}
}

func TestRemoteTimeoutTriggersFallback(t *testing.T) {
	d := New(ModeRemote, 10*time.Millisecond, nil)

	result, err := Call(context.Background(), d, "op",
		func(ctx context.Context) (string, error) {
			select {
			case <-time.After(time.Second):
				return "remote", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
		func(ctx context.Context) (string, error) { return "local", nil })
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if result != "local" {
		t.Fatalf("expected local result after remote timeout, got %q", result)
	}
}

func TestLocalKeepsCallerDeadline(t *testing.T) {
	d := New(ModeRemote, 5*time.Millisecond, nil)

	_, err := Call(context.Background(), d, "op",
		func(ctx context.Context) (string, error) { return "", fmt.Errorf("fail") },
		func(ctx context.Context) (string, error) {
			// The remote timeout must not leak into the local attempt.
			if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < 100*time.Millisecond {
				return "", fmt.Errorf("local ran under the remote deadline: %v", deadline)
			}
			return "ok", nil
		})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
}

func TestCallErr(t *testing.T) {
	d := New(ModeRemote, 0, nil)

	localCalls := 0
	err := CallErr(context.Background(), d, "op",
		func(ctx context.Context) error { return fmt.Errorf("remote fail") },
		func(ctx context.Context) error {
			localCalls++
			return nil
		})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if localCalls != 1 {
		t.Fatalf("expected one local call, got %d", localCalls)
	}
}
