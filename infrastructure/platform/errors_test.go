package platform

import (
	stderrors "errors"
	"fmt"
	"noping/errors"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "bot not in channel", err: slack.SlackErrorResponse{Err: "not_in_channel"}, want: errors.ErrTargetUnreachable},
		{name: "private channel", err: slack.SlackErrorResponse{Err: "channel_not_found"}, want: errors.ErrTargetUnreachable},
		{name: "archived channel", err: slack.SlackErrorResponse{Err: "is_archived"}, want: errors.ErrTargetUnreachable},
		{name: "message gone", err: slack.SlackErrorResponse{Err: "message_not_found"}, want: errors.ErrMessageNotFound},
		{name: "thread gone", err: slack.SlackErrorResponse{Err: "thread_not_found"}, want: errors.ErrMessageNotFound},
		{name: "someone else's message", err: slack.SlackErrorResponse{Err: "cant_update_message"}, want: errors.ErrNotRelayed},
		{name: "plain error code", err: fmt.Errorf("cant_delete_message"), want: errors.ErrNotRelayed},
		{name: "rate limited", err: slack.SlackErrorResponse{Err: "ratelimited"}, want: errors.ErrPlatformRejected},
		{name: "network failure", err: fmt.Errorf("dial tcp: connection refused"), want: errors.ErrPlatformRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got := categorize(tt.err)
			req.True(stderrors.Is(got, tt.want), "got %v", got)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, categorize(nil))
	})
}
