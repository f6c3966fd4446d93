package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rivulet-dev/rivulet/pkg/ioread"
	"github.com/rivulet-dev/rivulet/pkg/sched"
	"github.com/rivulet-dev/rivulet/pkg/stream"
)

func tailCmd() *cobra.Command {
	var chunkSize int

	cmd := &cobra.Command{
		Use:   "tail <path>",
		Short: "Stream a file's contents to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			logger := slog.Default().With("component", "tail", "path", path)

			resource, file, err := ioread.Open(path)
			if err != nil {
				return err
			}

			queue := sched.NewQueue()
			defer queue.Close()

			sig := ioread.ReadToEnd(resource, queue, ioread.WithChunkSize(chunkSize))
			sig.OnDisposed(func() {
				file.Close()
				logger.Debug("read stream torn down")
			})

			done := make(chan error, 1)
			sig.Observe(func(ev stream.Event[[]byte]) {
				switch ev.Kind() {
				case stream.KindValue:
					chunk, _ := ev.Value()
					os.Stdout.Write(chunk)
				case stream.KindFailed:
					done <- ev.Err()
				default:
					done <- nil
				}
			})

			if err := <-done; err != nil {
				return fmt.Errorf("streaming %s: %w", path, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkSize, "chunk-size", 4096, "Maximum bytes per read")

	return cmd
}
