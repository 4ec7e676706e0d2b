package platform

import (
	"context"
	"log/slog"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// SocketWorker receives Slack events over a Socket Mode websocket.
// Each event is acknowledged and handled in its own goroutine.
type SocketWorker struct {
	client  *socketmode.Client
	events  <-chan socketmode.Event
	connect func(ctx context.Context) error
	handler *Handler
	timeout time.Duration
	log     *slog.Logger
}

func NewSocketWorker(client *socketmode.Client, handler *Handler, timeout time.Duration, log *slog.Logger) *SocketWorker {
	return &SocketWorker{
		client:  client,
		events:  client.Events,
		connect: client.RunContext,
		handler: handler,
		timeout: timeout,
		log:     log,
	}
}

// Run owns one connection. Its dispatcher stops with it, so a restart by
// the supervisor never leaves two readers on the event stream.
func (w *SocketWorker) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.dispatch(runCtx, ctx)
	}()

	err := w.connect(runCtx)
	cancel()
	<-done
	return err
}

// dispatch reads events until the connection ends. Handlers run on the
// parent context so a dropped connection does not abort them.
func (w *SocketWorker) dispatch(conn, parent context.Context) {
	for {
		select {
		case <-conn.Done():
			return
		case evt, ok := <-w.events:
			if !ok {
				return
			}
			go w.handle(parent, evt)
		}
	}
}

func (w *SocketWorker) handle(ctx context.Context, evt socketmode.Event) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	switch evt.Type {
	case socketmode.EventTypeConnecting:
		w.log.Info("Connecting to Slack with Socket Mode")
	case socketmode.EventTypeConnected:
		w.log.Info("Connected to Slack with Socket Mode")
	case socketmode.EventTypeConnectionError:
		w.log.Warn("Socket Mode connection failed, retrying")
	case socketmode.EventTypeSlashCommand:
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok || evt.Request == nil {
			return
		}
		w.client.Ack(*evt.Request)
		w.handler.HandleCommand(ctx, cmd)
	case socketmode.EventTypeInteractive:
		callback, ok := evt.Data.(slack.InteractionCallback)
		if !ok || evt.Request == nil {
			return
		}
		if response := w.handler.HandleInteraction(ctx, callback); response != nil {
			w.client.Ack(*evt.Request, response)
			return
		}
		w.client.Ack(*evt.Request)
	default:
		w.log.Debug("Ignoring Socket Mode event", "type", evt.Type)
	}
}
