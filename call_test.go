package callz

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestCallOutcome(t *testing.T) {
	ok := Call{Name: "pkg.ok"}
	if ok.Failed() {
		t.Error("Expected call without error or panic to succeed")
	}
	if ok.Outcome() != "ok" {
		t.Errorf("Expected outcome ok, got %s", ok.Outcome())
	}

	failed := Call{Name: "pkg.fail", Err: errors.New("timeout")}
	if !failed.Failed() {
		t.Error("Expected call with error to fail")
	}
	if failed.Outcome() != "error: timeout" {
		t.Errorf("Expected error outcome, got %s", failed.Outcome())
	}

	panicked := Call{Name: "pkg.panic", Err: errors.New("ignored"), Panic: "boom"}
	if panicked.Outcome() != "panic: boom" {
		t.Errorf("Expected panic to take precedence, got %s", panicked.Outcome())
	}
}

func TestCallJSON(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	call := Call{
		Start:    start,
		End:      start.Add(20 * time.Millisecond),
		Duration: 20 * time.Millisecond,
		Key:      "github.com/acme/shop.Checkout",
		Name:     "shop.Checkout",
		Args:     `"cart-1"`,
		Err:      errors.New("not serialized"),
	}

	data, err := json.Marshal(call)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["key"] != "github.com/acme/shop.Checkout" {
		t.Errorf("Expected key field, got %v", decoded["key"])
	}
	if decoded["duration"] != float64(20*time.Millisecond) {
		t.Errorf("Expected duration in nanoseconds, got %v", decoded["duration"])
	}
	if _, ok := decoded["result"]; ok {
		t.Error("Expected empty result to be omitted")
	}
	if _, ok := decoded["Err"]; ok {
		t.Error("Expected error not to be serialized")
	}
}
