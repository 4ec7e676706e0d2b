package platform

import (
	"context"
	"fmt"
	"log/slog"
	"noping/domain"
	"noping/errors"

	"github.com/slack-go/slack"
)

// Client is the relay, identity resolver and modal opener backed by the Slack Web API.
type Client struct {
	api *slack.Client
	log *slog.Logger
}

func NewClient(api *slack.Client, log *slog.Logger) *Client {
	return &Client{api: api, log: log}
}

func (c *Client) Post(ctx context.Context, message domain.Outgoing) (domain.Location, error) {
	options := []slack.MsgOption{
		slack.MsgOptionText(message.Message.Fallback, false),
		slack.MsgOptionBlocks(MessageBlocks(message.Message)...),
		slack.MsgOptionUsername(message.Username),
	}
	if message.IconURL != "" {
		options = append(options, slack.MsgOptionIconURL(message.IconURL))
	}
	if message.ThreadTS != "" {
		options = append(options, slack.MsgOptionTS(message.ThreadTS))
	}

	channelID, timestamp, err := c.api.PostMessageContext(ctx, message.ChannelID, options...)
	if err != nil {
		return domain.Location{}, categorize(err)
	}
	return domain.Location{ChannelID: channelID, Timestamp: timestamp}, nil
}

func (c *Client) Update(ctx context.Context, location domain.Location, message domain.Rendered) error {
	_, _, _, err := c.api.UpdateMessageContext(ctx, location.ChannelID, location.Timestamp,
		slack.MsgOptionText(message.Fallback, false),
		slack.MsgOptionBlocks(MessageBlocks(message)...),
	)
	if err != nil {
		return categorize(err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, location domain.Location) error {
	if _, _, err := c.api.DeleteMessageContext(ctx, location.ChannelID, location.Timestamp); err != nil {
		return categorize(err)
	}
	return nil
}

func (c *Client) Resolve(ctx context.Context, userID string) (domain.Profile, error) {
	profile, err := c.api.GetUserProfileContext(ctx, &slack.GetUserProfileParameters{UserID: userID})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %s: %w", errors.ErrUnresolvableIdentity, userID, categorize(err))
	}
	image := profile.Image512
	if image == "" {
		image = profile.Image192
	}
	return domain.Profile{
		UserID:      userID,
		DisplayName: profile.DisplayName,
		RealName:    profile.RealName,
		ImageURL:    image,
	}, nil
}

// OpenModal shows a view in answer to a trigger; triggers expire after a few seconds.
func (c *Client) OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("open view %s: %w", view.CallbackID, categorize(err))
	}
	return nil
}

// Respond posts an ephemeral notice through an interaction's response_url.
// It works in channels the bot is not a member of.
func (c *Client) Respond(ctx context.Context, responseURL, text string) error {
	if responseURL == "" {
		return fmt.Errorf("no response url to answer on")
	}
	return slack.PostWebhookContext(ctx, responseURL, &slack.WebhookMessage{
		Text:         text,
		ResponseType: "ephemeral",
	})
}
