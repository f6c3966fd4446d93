package stream

import (
	"errors"
	"testing"
)

func TestEventKinds(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		ev       Event[int]
		kind     EventKind
		terminal bool
	}{
		{"value", Value(42), KindValue, false},
		{"failed", Failed[int](boom), KindFailed, true},
		{"completed", Completed[int](), KindCompleted, true},
		{"interrupted", Interrupted[int](), KindInterrupted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ev.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.ev.Kind(), tt.kind)
			}
			if tt.ev.IsTerminal() != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", tt.ev.IsTerminal(), tt.terminal)
			}
		})
	}

	if v, ok := Value(42).Value(); !ok || v != 42 {
		t.Errorf("Value() = %v, %v", v, ok)
	}
	if _, ok := Completed[int]().Value(); ok {
		t.Error("Completed should carry no payload")
	}
	if err := Failed[int](boom).Err(); !errors.Is(err, boom) {
		t.Errorf("Err() = %v, want %v", err, boom)
	}
}

func TestEventString(t *testing.T) {
	if got := Value("hi").String(); got != "value(hi)" {
		t.Errorf("String() = %q", got)
	}
	if got := Completed[int]().String(); got != "completed" {
		t.Errorf("String() = %q", got)
	}
	if got := Failed[int](errors.New("x")).String(); got != "failed(x)" {
		t.Errorf("String() = %q", got)
	}
	if got := Interrupted[int]().String(); got != "interrupted" {
		t.Errorf("String() = %q", got)
	}
}
