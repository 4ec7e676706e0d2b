package services

import (
	"context"
	"fmt"
	"log/slog"
	"noping/domain"
	"noping/errors"
	"noping/mention"
	"noping/mocks"
	"noping/ownership"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const workspace = "hackclub"

type fixture struct {
	relay    *mocks.MockRelay
	resolver *mocks.MockIdentityResolver
	issuer   *ownership.Issuer
	svc      *RelayService
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	relay := mocks.NewMockRelay(ctrl)
	resolver := mocks.NewMockIdentityResolver(ctrl)
	issuer := ownership.NewIssuer([]byte("test-signing-key"))
	svc := NewRelayService(relay, resolver, mention.NewRedactor(resolver, log), issuer, log)
	return fixture{relay: relay, resolver: resolver, issuer: issuer, svc: svc}
}

func TestRelayService_Send(t *testing.T) {
	t.Run("should post the redacted message under the author's identity", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.resolver.EXPECT().Resolve(gomock.Any(), "U2").
			Return(domain.Profile{UserID: "U2", DisplayName: "bob"}, nil)
		f.resolver.EXPECT().Resolve(gomock.Any(), "U1").
			Return(domain.Profile{UserID: "U1", DisplayName: "Alice", ImageURL: "https://img/alice.png"}, nil)

		var posted domain.Outgoing
		f.relay.EXPECT().Post(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, out domain.Outgoing) (domain.Location, error) {
				posted = out
				return domain.Location{ChannelID: "C1", Timestamp: "1.2"}, nil
			}).
			Times(1)

		location, err := f.svc.Send(context.Background(), domain.SendCommand{
			UserID:     "U1",
			UserName:   "alice",
			ChannelID:  "C1",
			TeamDomain: workspace,
			Body:       domain.InlineContent("hey <@U2|bob>, ping <@U3|carol> \\"),
		})

		req.NoError(err)
		req.Equal(domain.Location{ChannelID: "C1", Timestamp: "1.2"}, location)
		req.Equal("Alice", posted.Username)
		req.Equal("https://img/alice.png", posted.IconURL)
		req.Equal("C1", posted.ChannelID)
		req.Equal("*<@U1>*:", posted.Message.Preface)
		req.Equal("hey <https://hackclub.slack.com/team/U2|@bob>, ping <@U3|carol> \\", posted.Message.Body.Text)
		req.True(ownership.Owns(posted.Message.Fallback, "U1"))
	})

	t.Run("should keep the command user name when the profile is unavailable", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.resolver.EXPECT().Resolve(gomock.Any(), "U1").Return(domain.Profile{}, fmt.Errorf("boom"))
		f.relay.EXPECT().
			Post(gomock.Any(), gomock.Cond(func(out domain.Outgoing) bool {
				return out.Username == "alice" && out.IconURL == ""
			})).
			Return(domain.Location{ChannelID: "C1", Timestamp: "1.2"}, nil)

		_, err := f.svc.Send(context.Background(), domain.SendCommand{
			UserID: "U1", UserName: "alice", ChannelID: "C1", TeamDomain: workspace,
			Body: domain.InlineContent("hello"),
		})
		req.NoError(err)
	})

	t.Run("should refuse an empty message without posting", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.relay.EXPECT().Post(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.Send(context.Background(), domain.SendCommand{
			UserID: "U1", ChannelID: "C1", TeamDomain: workspace, Body: domain.InlineContent("   "),
		})
		req.ErrorIs(err, errors.ErrEmptyMessage)
	})

	t.Run("should reject a command without channel", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		_, err := f.svc.Send(context.Background(), domain.SendCommand{
			UserID: "U1", TeamDomain: workspace, Body: domain.InlineContent("hello"),
		})
		req.ErrorIs(err, errors.ErrInvalidCommand)
	})

	t.Run("should surface an unreachable channel", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.resolver.EXPECT().Resolve(gomock.Any(), "U1").Return(domain.Profile{DisplayName: "Alice"}, nil)
		f.relay.EXPECT().Post(gomock.Any(), gomock.Any()).
			Return(domain.Location{}, fmt.Errorf("%w: not_in_channel", errors.ErrTargetUnreachable))

		_, err := f.svc.Send(context.Background(), domain.SendCommand{
			UserID: "U1", ChannelID: "G1", TeamDomain: workspace, Body: domain.InlineContent("hello"),
		})
		req.ErrorIs(err, errors.ErrTargetUnreachable)
	})
}

func TestRelayService_Edit(t *testing.T) {
	action := domain.ActionCommand{
		UserID:      "U1",
		ChannelID:   "C1",
		MessageTS:   "1712345678.000100",
		MessageText: "*<@U1>*: hello",
	}

	t.Run("should open then apply an edit for the author", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		decision, err := f.svc.OpenEdit(context.Background(), action)
		req.NoError(err)
		req.True(decision.Authorized)
		req.NotEmpty(decision.Metadata)

		f.relay.EXPECT().
			Update(gomock.Any(),
				domain.Location{ChannelID: "C1", Timestamp: "1712345678.000100"},
				gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Location, msg domain.Rendered) error {
				req.Equal("U1", msg.AuthorID)
				req.Equal([]domain.Segment{
					domain.Text("hi "),
					domain.Link("@PlaceholderUsername", "https://hackclub.slack.com/team/U2"),
				}, msg.Body.Segments)
				return nil
			})
		f.resolver.EXPECT().Resolve(gomock.Any(), "U2").Return(domain.Profile{}, fmt.Errorf("users_not_found"))

		err = f.svc.SubmitEdit(context.Background(), domain.SubmitCommand{
			UserID:     "U1",
			TeamDomain: workspace,
			Metadata:   decision.Metadata,
			Body:       domain.SegmentedContent(domain.Text("hi "), domain.UserMention("U2")),
		})
		req.NoError(err)
	})

	t.Run("should deny someone else without any mutation", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.relay.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		intruder := action
		intruder.UserID = "U2"
		decision, err := f.svc.OpenEdit(context.Background(), intruder)
		req.NoError(err)
		req.False(decision.Authorized)
		req.Empty(decision.Metadata)
	})

	t.Run("should not accept a delete token for an edit", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.relay.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		decision, err := f.svc.OpenDelete(context.Background(), action)
		req.NoError(err)

		err = f.svc.SubmitEdit(context.Background(), domain.SubmitCommand{
			UserID: "U1", TeamDomain: workspace, Metadata: decision.Metadata,
			Body: domain.SegmentedContent(domain.Text("hi")),
		})
		req.ErrorIs(err, errors.ErrInvalidToken)
	})

	t.Run("should propagate a vanished message", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		decision, err := f.svc.OpenEdit(context.Background(), action)
		req.NoError(err)
		f.relay.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.ErrMessageNotFound)

		err = f.svc.SubmitEdit(context.Background(), domain.SubmitCommand{
			UserID: "U1", TeamDomain: workspace, Metadata: decision.Metadata,
			Body: domain.SegmentedContent(domain.Text("hi")),
		})
		req.ErrorIs(err, errors.ErrMessageNotFound)
	})
}

func TestRelayService_Delete(t *testing.T) {
	t.Run("should deny a non author on a correctly prefaced message", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.relay.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		decision, err := f.svc.OpenDelete(context.Background(), domain.ActionCommand{
			UserID: "U1", ChannelID: "C1", MessageTS: "1.2", MessageText: "*<@U2>*: hi",
		})
		req.NoError(err)
		req.False(decision.Authorized)
	})

	t.Run("should deny on a message without preface", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		decision, err := f.svc.OpenDelete(context.Background(), domain.ActionCommand{
			UserID: "U1", ChannelID: "C1", MessageTS: "1.2", MessageText: "just a message",
		})
		req.NoError(err)
		req.False(decision.Authorized)
	})

	t.Run("should delete the message located by the token", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		decision, err := f.svc.OpenDelete(context.Background(), domain.ActionCommand{
			UserID: "U1", ChannelID: "C1", MessageTS: "1.2", MessageText: "*<@U1>*: hi",
		})
		req.NoError(err)
		req.True(decision.Authorized)

		f.relay.EXPECT().Delete(gomock.Any(), domain.Location{ChannelID: "C1", Timestamp: "1.2"}).Return(nil)

		err = f.svc.SubmitDelete(context.Background(), domain.SubmitCommand{
			UserID: "U1", TeamDomain: workspace, Metadata: decision.Metadata,
		})
		req.NoError(err)
	})

	t.Run("should refuse a token that was never issued", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.relay.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		forged, err := ownership.NewIssuer([]byte("forged")).Issue(ownership.Token{
			Action: ownership.ActionDelete, MessageTS: "1.2", ChannelID: "C1",
		})
		req.NoError(err)

		err = f.svc.SubmitDelete(context.Background(), domain.SubmitCommand{
			UserID: "U1", TeamDomain: workspace, Metadata: forged,
		})
		req.ErrorIs(err, errors.ErrInvalidToken)
	})
}

func TestRelayService_Reply(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	// Given a reply opened on a message that is already inside a thread
	decision, err := f.svc.OpenReply(context.Background(), domain.ActionCommand{
		UserID: "U9", ChannelID: "C1", MessageTS: "5.0", ThreadTS: "1.0",
	})
	req.NoError(err)
	req.True(decision.Authorized)

	f.resolver.EXPECT().Resolve(gomock.Any(), "U9").Return(domain.Profile{RealName: "Nina"}, nil)
	f.relay.EXPECT().
		Post(gomock.Any(), gomock.Cond(func(out domain.Outgoing) bool {
			return out.ChannelID == "C1" && out.ThreadTS == "1.0" && out.Username == "Nina"
		})).
		Return(domain.Location{ChannelID: "C1", Timestamp: "6.0"}, nil)

	// Then the reply lands in the thread root
	location, err := f.svc.SubmitReply(context.Background(), domain.SubmitCommand{
		UserID: "U9", TeamDomain: workspace, Metadata: decision.Metadata,
		Body: domain.SegmentedContent(domain.Text("thanks")),
	})
	req.NoError(err)
	req.Equal("6.0", location.Timestamp)
}

func TestRelayService_Cancel(t *testing.T) {
	f := newFixture(t)
	f.relay.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.relay.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	decision, err := f.svc.OpenDelete(context.Background(), domain.ActionCommand{
		UserID: "U1", ChannelID: "C1", MessageTS: "1.2", MessageText: "*<@U1>*: hi",
	})
	require.NoError(t, err)

	f.svc.Cancel(context.Background(), ownership.ActionDelete, decision.Metadata)
	f.svc.Cancel(context.Background(), ownership.ActionDelete, "garbage")
}
