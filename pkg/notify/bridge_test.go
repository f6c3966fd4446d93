package notify

import (
	"testing"

	"github.com/rivulet-dev/rivulet/pkg/stream"
)

func TestNotificationsFiltersByName(t *testing.T) {
	c := NewCenter()
	sig := Notifications(c, "A")

	var got []Notification
	reg := sig.ObserveValues(func(n Notification) { got = append(got, n) })

	c.Post(Notification{Name: "A", Payload: "first"})
	c.Post(Notification{Name: "B", Payload: "wrong"})
	c.Post(Notification{Name: "A", Payload: "second"})

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d: %v", len(got), got)
	}
	if got[0].Payload != "first" || got[1].Payload != "second" {
		t.Errorf("unexpected payloads: %v", got)
	}

	// Disposing the sole registration removes the center observer: further
	// posts reach nobody.
	reg.Dispose()
	c.Post(Notification{Name: "A", Payload: "late"})
	if len(got) != 2 {
		t.Errorf("received a post after disposal: %v", got)
	}
}

func TestNotificationsNeverTerminates(t *testing.T) {
	c := NewCenter()
	sig := Notifications(c, "")

	var terminals int
	sig.Observe(func(ev stream.Event[Notification]) {
		if ev.IsTerminal() {
			terminals++
		}
	})

	c.Post(Notification{Name: "x"})
	c.Post(Notification{Name: "y"})

	if terminals != 0 {
		t.Errorf("bridge produced %d terminal events on its own", terminals)
	}
}

func TestNotificationsTeardownUnhooksCenter(t *testing.T) {
	c := NewCenter()
	sig := Notifications(c, "A")

	disposed := false
	sig.OnDisposed(func() { disposed = true })

	reg := sig.ObserveValues(func(Notification) {})
	if disposed {
		t.Fatal("teardown ran while an observer was attached")
	}

	reg.Dispose()
	if !disposed {
		t.Fatal("teardown should run when the last observer detaches")
	}

	c.mu.Lock()
	remaining := len(c.observers)
	c.mu.Unlock()
	if remaining != 0 {
		t.Errorf("center still holds %d observers after teardown", remaining)
	}
}
