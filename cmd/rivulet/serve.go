package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rivulet-dev/rivulet/pkg/notify"
	"github.com/rivulet-dev/rivulet/pkg/streammetrics"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a notification hub over HTTP",
		Long: `Serve runs an in-process notification center. Clients post
notifications over HTTP or pump them in over WebSocket, and observe matching
notifications as a server-sent event stream. Prometheus metrics are exposed
on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default().With("component", "serve")
			center := notify.NewCenter()
			collector := streammetrics.NewCollector()

			r := chi.NewRouter()
			r.Use(chimiddleware.Recoverer)

			r.Handle("/metrics", promhttp.Handler())
			r.Post("/post", postHandler(center))
			r.Get("/ws", wsHandler(center, logger))
			r.Get("/events", eventsHandler(center, collector, logger))

			logger.Info("listening", "addr", addr)
			return http.ListenAndServe(addr, r)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	return cmd
}

// postHandler posts the request body as a notification named by ?name.
func postHandler(center *notify.Center) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "missing name parameter", http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		center.Post(notify.Notification{Name: name, Payload: body})
		w.WriteHeader(http.StatusAccepted)
	}
}

// wsHandler pumps an inbound WebSocket connection into the center.
func wsHandler(center *notify.Center, logger *slog.Logger) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = "websocket.message"
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		if err := notify.PumpWebSocket(r.Context(), conn, center,
			notify.WithName(name),
			notify.WithLogger(logger),
		); err != nil {
			logger.Warn("websocket pump ended", "error", err)
		}
	}
}

// eventsHandler streams matching notifications as server-sent events.
func eventsHandler(center *notify.Center, collector *streammetrics.Collector, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		name := r.URL.Query().Get("name")
		sig := notify.Notifications(center, name)
		watch := streammetrics.Watch(collector, sig, "sse")
		defer watch.Dispose()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		// Deliveries race with the client going away; serialize writes
		// through a channel owned by this handler goroutine.
		events := make(chan notify.Notification, 64)
		reg := sig.ObserveValues(func(n notify.Notification) {
			select {
			case events <- n:
			default:
				// Slow client: drop rather than block the fan-out.
			}
		})
		defer reg.Dispose()

		for {
			select {
			case <-r.Context().Done():
				logger.Debug("sse client disconnected")
				return
			case n := <-events:
				payload, _ := n.Payload.([]byte)
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", n.Name, payload)
				flusher.Flush()
			}
		}
	}
}
