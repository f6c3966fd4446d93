// Package stream provides a push-driven event stream primitive.
//
// A stream delivers Events — payloads followed by at most one terminal
// marker — to observers in attachment order. The interesting part is the
// lifecycle: the stream's shared core stays alive exactly as long as it has
// at least one attached observer, and its upstream teardown runs exactly
// once, either when the last observer detaches or when a terminal event is
// delivered, whichever comes first.
//
// # Creating streams
//
// Producers start work inside New and cancel it in the returned disposable:
//
//	sig := stream.New(func(em stream.Emitter[int]) disposable.Disposable {
//	    stop := startCounting(em.SendValue)
//	    return disposable.New(stop)
//	})
//
// When producer and consumer are decoupled, NewWithEmitter returns both
// halves:
//
//	sig, em := stream.NewWithEmitter[string]()
//	em.SendValue("hello")
//	em.SendCompleted()
//
// # Observing
//
//	reg := sig.Observe(func(ev stream.Event[int]) { ... })
//	defer reg.Dispose()
//
// Registrations are idempotent disposables; disposing the last one tears the
// upstream down without terminating the stream. Attaching to an already
// terminated stream replays the terminal event synchronously.
//
// # Thread safety
//
// Observe, Dispose, and Send may race freely on one stream. Fan-out runs on
// a snapshot of the registry outside the core's lock, so observer callbacks
// may re-enter the same stream.
package stream
