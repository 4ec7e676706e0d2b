package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"noping/domain"
	"noping/errors"
	"noping/infrastructure/platform"
	"noping/mocks"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mama165/sdk-go/logs"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const secret = "8f742231b10e8888abcd99yyyzzz85a5"

func newServer(t *testing.T) (*Server, *mocks.MockIRelayService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	service := mocks.NewMockIRelayService(ctrl)
	client := platform.NewClient(slack.New("xoxb-test"), log)
	handler := platform.NewHandler(service, client, "/np", log)
	return NewServer("127.0.0.1", 0, secret, handler, 5*time.Second, log), service
}

func signed(t *testing.T, contentType, body string) *http.Request {
	t.Helper()
	ts := fmt.Sprint(time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	_, err := mac.Write([]byte("v0:" + ts + ":" + body))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("X-Slack-Request-Timestamp", ts)
	r.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(mac.Sum(nil)))
	return r
}

func serve(s *Server, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, r)
	return w
}

func TestServer_Health(t *testing.T) {
	s, _ := newServer(t)
	w := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestServer_Signature(t *testing.T) {
	t.Run("should reject an unsigned request", func(t *testing.T) {
		s, _ := newServer(t)
		r := httptest.NewRequest(http.MethodPost, "/slack/events", strings.NewReader("command=%2Fnp"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		require.Equal(t, http.StatusUnauthorized, serve(s, r).Code)
	})

	t.Run("should reject a tampered body", func(t *testing.T) {
		s, _ := newServer(t)
		r := signed(t, "application/x-www-form-urlencoded", "command=%2Fnp&text=hi")
		r.Body = http.NoBody
		r.ContentLength = 0

		require.Equal(t, http.StatusUnauthorized, serve(s, r).Code)
	})
}

func TestServer_HandleEvent(t *testing.T) {
	t.Run("should echo the url verification challenge", func(t *testing.T) {
		req := require.New(t)
		s, _ := newServer(t)

		w := serve(s, signed(t, "application/json", `{"type":"url_verification","challenge":"abc123","token":"x"}`))

		req.Equal(http.StatusOK, w.Code)
		req.Equal("abc123", w.Body.String())
	})

	t.Run("should acknowledge a command and relay it", func(t *testing.T) {
		req := require.New(t)
		s, service := newServer(t)
		done := make(chan domain.SendCommand, 1)
		service.EXPECT().Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd domain.SendCommand) (domain.Location, error) {
				done <- cmd
				return domain.Location{ChannelID: cmd.ChannelID, Timestamp: "1.2"}, nil
			})

		form := url.Values{
			"command":     {"/np"},
			"text":        {"hi <@U2|bob>"},
			"user_id":     {"U1"},
			"user_name":   {"alice"},
			"channel_id":  {"C1"},
			"team_domain": {"hackclub"},
		}
		w := serve(s, signed(t, "application/x-www-form-urlencoded", form.Encode()))

		req.Equal(http.StatusOK, w.Code)
		select {
		case cmd := <-done:
			req.Equal("hi <@U2|bob>", cmd.Body.Text)
			req.Equal("hackclub", cmd.TeamDomain)
		case <-time.After(2 * time.Second):
			t.Fatal("command was not relayed")
		}
	})

	t.Run("should answer a view submission in the response", func(t *testing.T) {
		req := require.New(t)
		s, service := newServer(t)
		service.EXPECT().SubmitEdit(gomock.Any(), gomock.Any()).Return(errors.ErrEmptyMessage)

		payload, err := json.Marshal(map[string]any{
			"type": "view_submission",
			"user": map[string]any{"id": "U1"},
			"team": map[string]any{"domain": "hackclub"},
			"view": map[string]any{"callback_id": platform.ViewEdit, "private_metadata": "signed"},
		})
		req.NoError(err)
		form := url.Values{"payload": {string(payload)}}

		w := serve(s, signed(t, "application/x-www-form-urlencoded", form.Encode()))

		req.Equal(http.StatusOK, w.Code)
		var response slack.ViewSubmissionResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &response))
		req.Equal(slack.RAErrors, response.ResponseAction)
		req.Contains(response.Errors, "body")
	})

	t.Run("should refuse a form without a command", func(t *testing.T) {
		s, _ := newServer(t)
		w := serve(s, signed(t, "application/x-www-form-urlencoded", "text=hello"))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
