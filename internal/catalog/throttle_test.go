package catalog

import (
	"context"
	"testing"
	"time"
)

// countingTarget records calls; the embedded nil Target panics on anything
// the tests do not expect.
type countingTarget struct {
	Target
	calls int
}

func (c *countingTarget) CreateDatabase(context.Context, *CreateDatabaseParams) error {
	c.calls++
	return nil
}

func (c *countingTarget) BatchCreatePartition(context.Context, *BatchCreatePartitionParams) ([]Failure, error) {
	c.calls++
	return []Failure{{Code: "AlreadyExistsException"}}, nil
}

func TestThrottleDisabled(t *testing.T) {
	inner := &countingTarget{}
	if got := Throttle(inner, 0); got != Target(inner) {
		t.Fatalf("Throttle(t, 0) = %T, want the target itself", got)
	}
}

func TestThrottlePacesCalls(t *testing.T) {
	inner := &countingTarget{}
	target := Throttle(inner, 20)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := target.CreateDatabase(context.Background(), &CreateDatabaseParams{}); err != nil {
			t.Fatalf("CreateDatabase: %v", err)
		}
	}
	// The first call uses the burst; the next two wait 50ms each.
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Fatalf("3 calls at 20/s took %v", elapsed)
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d", inner.calls)
	}

	failures, err := target.BatchCreatePartition(context.Background(), &BatchCreatePartitionParams{})
	if err != nil || len(failures) != 1 {
		t.Fatalf("BatchCreatePartition = %v, %v", failures, err)
	}
}

func TestThrottleCancelled(t *testing.T) {
	inner := &countingTarget{}
	target := Throttle(inner, 0.001)
	ctx := context.Background()
	if err := target.CreateDatabase(ctx, &CreateDatabaseParams{}); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	err := target.CreateDatabase(ctx, &CreateDatabaseParams{})
	if err == nil {
		t.Fatal("expected error when the wait exceeds the deadline")
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1", inner.calls)
	}
}
