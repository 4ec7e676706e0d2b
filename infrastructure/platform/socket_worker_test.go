package platform

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/slack-go/slack/socketmode"
	"github.com/stretchr/testify/require"
)

func TestSocketWorker_DispatcherStopsWithConnection(t *testing.T) {
	req := require.New(t)
	events := make(chan socketmode.Event, 1)
	worker := &SocketWorker{
		events: events,
		connect: func(ctx context.Context) error {
			return fmt.Errorf("websocket closed")
		},
		timeout: time.Second,
		log:     logs.GetLoggerFromLevel(slog.LevelDebug),
	}

	// Given the connection dropped twice under a live parent context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req.Error(worker.Run(ctx))
	req.Error(worker.Run(ctx))

	// Then no dispatcher is left reading the event stream
	events <- socketmode.Event{Type: socketmode.EventTypeConnecting}
	time.Sleep(50 * time.Millisecond)
	req.Len(events, 1)
}

func TestSocketWorker_DispatchesWhileConnected(t *testing.T) {
	req := require.New(t)
	events := make(chan socketmode.Event, 1)
	consumed := make(chan struct{})
	worker := &SocketWorker{
		events: events,
		connect: func(ctx context.Context) error {
			events <- socketmode.Event{Type: socketmode.EventTypeConnected}
			// wait until the dispatcher took the event, then drop the connection
			for len(events) > 0 {
				time.Sleep(time.Millisecond)
			}
			close(consumed)
			return nil
		},
		timeout: time.Second,
		log:     logs.GetLoggerFromLevel(slog.LevelDebug),
	}

	req.NoError(worker.Run(context.Background()))
	select {
	case <-consumed:
	case <-time.After(time.Second):
		req.Fail("event was not dispatched")
	}
}
