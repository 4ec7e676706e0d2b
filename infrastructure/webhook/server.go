package webhook

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"noping/infrastructure/platform"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

const shutdownTimeout = 10 * time.Second

// Server receives slash commands and interactions over HTTPS, for apps that
// do not use Socket Mode. Slack expects an answer within three seconds, so
// commands and shortcuts are acknowledged first and handled afterwards.
type Server struct {
	addr    string
	secret  string
	handler *platform.Handler
	timeout time.Duration
	log     *slog.Logger
}

func NewServer(host string, port int, secret string, handler *platform.Handler, timeout time.Duration, log *slog.Logger) *Server {
	return &Server{
		addr:    net.JoinHostPort(host, fmt.Sprint(port)),
		secret:  secret,
		handler: handler,
		timeout: timeout,
		log:     log,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), Logger(s.log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	slackRoutes := router.Group("/slack", VerifySlack(s.secret, s.log))
	{
		slackRoutes.POST("/events", s.HandleEvent)
	}
	return router
}

// Run serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server starting", "addr", s.addr)
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// HandleEvent accepts the three payloads Slack sends to the request URL:
// the url_verification challenge, interactions and slash commands.
func (s *Server) HandleEvent(c *gin.Context) {
	if c.ContentType() == gin.MIMEJSON {
		s.handleChallenge(c)
		return
	}

	if payload := c.PostForm("payload"); payload != "" {
		var callback slack.InteractionCallback
		if err := json.Unmarshal([]byte(payload), &callback); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		s.handleInteraction(c, callback)
		return
	}

	cmd, err := slack.SlashCommandParse(c.Request)
	if err != nil || cmd.Command == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid command"})
		return
	}
	go s.detached(c.Request.Context(), func(ctx context.Context) {
		s.handler.HandleCommand(ctx, cmd)
	})
	c.Status(http.StatusOK)
}

func (s *Server) handleChallenge(c *gin.Context) {
	var challenge slackevents.ChallengeResponse
	if err := c.ShouldBindJSON(&challenge); err != nil || challenge.Challenge == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
		return
	}
	c.String(http.StatusOK, challenge.Challenge)
}

// handleInteraction answers view submissions synchronously, their response
// decides what the modal shows next.
func (s *Server) handleInteraction(c *gin.Context, callback slack.InteractionCallback) {
	if callback.Type != slack.InteractionTypeViewSubmission {
		go s.detached(c.Request.Context(), func(ctx context.Context) {
			s.handler.HandleInteraction(ctx, callback)
		})
		c.Status(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()
	if response := s.handler.HandleInteraction(ctx, callback); response != nil {
		c.JSON(http.StatusOK, response)
		return
	}
	c.Status(http.StatusOK)
}

// detached runs fn after the request returned, bounded by the request timeout.
func (s *Server) detached(parent context.Context, fn func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.timeout)
	defer cancel()
	fn(ctx)
}
