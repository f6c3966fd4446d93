package streammetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rivulet-dev/rivulet/pkg/stream"
)

func newTestCollector() *Collector {
	return NewCollector(
		WithNamespace("test"),
		WithRegistry(prometheus.NewRegistry()),
	)
}

func TestWatchCountsEvents(t *testing.T) {
	c := newTestCollector()
	sig, em := stream.NewWithEmitter[int]()

	Watch(c, sig, "numbers")

	em.SendValue(1)
	em.SendValue(2)
	em.SendCompleted()

	if got := testutil.ToFloat64(c.eventsTotal.WithLabelValues("numbers", "value")); got != 2 {
		t.Errorf("events_total{kind=value} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.eventsTotal.WithLabelValues("numbers", "completed")); got != 1 {
		t.Errorf("events_total{kind=completed} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.terminatedTotal.WithLabelValues("numbers", "completed")); got != 1 {
		t.Errorf("terminated_total = %v, want 1", got)
	}
}

func TestWatchTracksTeardown(t *testing.T) {
	c := newTestCollector()
	sig, _ := stream.NewWithEmitter[int]()

	reg := Watch(c, sig, "lifecycle")

	if got := testutil.ToFloat64(c.liveStreams.WithLabelValues("lifecycle")); got != 1 {
		t.Fatalf("live_streams = %v, want 1", got)
	}

	// Last observer detaching tears the stream down exactly once.
	reg.Dispose()

	if got := testutil.ToFloat64(c.teardownsTotal.WithLabelValues("lifecycle")); got != 1 {
		t.Errorf("teardowns_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.liveStreams.WithLabelValues("lifecycle")); got != 0 {
		t.Errorf("live_streams = %v, want 0", got)
	}
}

func TestWatchFailureKind(t *testing.T) {
	c := newTestCollector()
	sig, em := stream.NewWithEmitter[string]()

	Watch(c, sig, "flaky")
	em.SendFailed(errors.New("boom"))

	if got := testutil.ToFloat64(c.terminatedTotal.WithLabelValues("flaky", "failed")); got != 1 {
		t.Errorf("terminated_total{kind=failed} = %v, want 1", got)
	}
	// A terminal event also tears down.
	if got := testutil.ToFloat64(c.teardownsTotal.WithLabelValues("flaky")); got != 1 {
		t.Errorf("teardowns_total = %v, want 1", got)
	}
}
