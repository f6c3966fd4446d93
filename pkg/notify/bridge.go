package notify

import (
	"github.com/rivulet-dev/rivulet/pkg/disposable"
	"github.com/rivulet-dev/rivulet/pkg/stream"
)

// Notifications returns a stream of the center's notifications named name,
// or of all notifications when name is empty.
//
// The stream registers a center observer when created and removes it in its
// teardown, so disposing the last registration unhooks the center. The
// stream never fails and never terminates on its own: only disposal ends
// delivery.
func Notifications(c *Center, name string) *stream.Signal[Notification] {
	return stream.New(func(em stream.Emitter[Notification]) disposable.Disposable {
		token := c.AddObserver(name, func(n Notification) {
			em.SendValue(n)
		})
		return disposable.New(func() {
			c.RemoveObserver(token)
		})
	})
}
