package platform

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"noping/domain"
	"noping/errors"
	"noping/ownership"
	"noping/services"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

const (
	noticeNotOwner    = "Only the author of this message can %s it."
	noticeUnreachable = "I can't post in this channel. Add me to the channel first, then try again."
	noticeNotFound    = "That message doesn't exist anymore."
	noticeNotRelayed  = "I can only change messages I posted."
	noticeFailed      = "Something went wrong, nothing was changed."
	noticeEmptyBody   = "There's nothing for me to send!"
)

// Handler turns Slack slash commands and interactions into relay operations.
// It is shared by the Socket Mode and HTTP transports.
type Handler struct {
	service services.IRelayService
	client  *Client
	command string
	log     *slog.Logger
}

func NewHandler(service services.IRelayService, client *Client, command string, log *slog.Logger) *Handler {
	return &Handler{service: service, client: client, command: command, log: log}
}

func (h *Handler) usage() string {
	return fmt.Sprintf("There's nothing for me to send! Use `%s <message>` to send a message without pings,"+
		" and use `@... \\` in your message to escape a ping.", h.command)
}

// HandleCommand relays the text of a slash command.
func (h *Handler) HandleCommand(ctx context.Context, cmd slack.SlashCommand) {
	log := h.log.With("request_id", uuid.NewString(), "command", cmd.Command, "user_id", cmd.UserID)
	if cmd.Command != h.command {
		log.Warn("Ignoring unknown command")
		return
	}

	_, err := h.service.Send(ctx, domain.SendCommand{
		UserID:     cmd.UserID,
		UserName:   cmd.UserName,
		ChannelID:  cmd.ChannelID,
		TeamDomain: cmd.TeamDomain,
		Body:       domain.InlineContent(cmd.Text),
	})
	switch {
	case err == nil:
		return
	case stderrors.Is(err, errors.ErrEmptyMessage):
		h.respond(ctx, log, cmd.ResponseURL, h.usage())
	case stderrors.Is(err, errors.ErrTargetUnreachable):
		log.Info("Channel not reachable", "channel_id", cmd.ChannelID, "error", err)
		h.respond(ctx, log, cmd.ResponseURL, noticeUnreachable)
	default:
		log.Error("Relay failed", "channel_id", cmd.ChannelID, "error", err)
		h.respond(ctx, log, cmd.ResponseURL, noticeFailed)
	}
}

// HandleInteraction returns the payload to acknowledge the interaction with,
// nil when a plain acknowledgement is enough.
func (h *Handler) HandleInteraction(ctx context.Context, callback slack.InteractionCallback) *slack.ViewSubmissionResponse {
	log := h.log.With("request_id", uuid.NewString(), "type", callback.Type, "user_id", callback.User.ID)

	switch callback.Type {
	case slack.InteractionTypeMessageAction:
		h.handleShortcut(ctx, log, callback)
	case slack.InteractionTypeViewSubmission:
		return h.handleSubmission(ctx, log, callback)
	case slack.InteractionTypeViewClosed:
		if action, ok := actionOfView(callback.View.CallbackID); ok {
			h.service.Cancel(ctx, action, callback.View.PrivateMetadata)
		}
	default:
		log.Debug("Ignoring interaction")
	}
	return nil
}

func (h *Handler) handleShortcut(ctx context.Context, log *slog.Logger, callback slack.InteractionCallback) {
	cmd := domain.ActionCommand{
		UserID:      callback.User.ID,
		ChannelID:   callback.Channel.ID,
		MessageTS:   callback.Message.Timestamp,
		ThreadTS:    callback.Message.ThreadTimestamp,
		MessageText: callback.Message.Text,
	}
	log = log.With("callback_id", callback.CallbackID, "channel_id", cmd.ChannelID, "message_ts", cmd.MessageTS)

	var (
		decision domain.Decision
		err      error
		view     func(metadata string) slack.ModalViewRequest
		verb     string
	)
	switch callback.CallbackID {
	case ShortcutEdit:
		decision, err = h.service.OpenEdit(ctx, cmd)
		current := BodyFromBlocks(callback.Message.Blocks)
		view = func(metadata string) slack.ModalViewRequest { return EditView(metadata, current) }
		verb = "edit"
	case ShortcutDelete:
		decision, err = h.service.OpenDelete(ctx, cmd)
		view = DeleteView
		verb = "delete"
	case ShortcutReply:
		decision, err = h.service.OpenReply(ctx, cmd)
		view = ReplyView
		verb = "reply to"
	default:
		log.Warn("Ignoring unknown shortcut")
		return
	}

	if err != nil {
		log.Error("Unable to open interaction", "error", err)
		h.respond(ctx, log, callback.ResponseURL, noticeFailed)
		return
	}
	if !decision.Authorized {
		h.respond(ctx, log, callback.ResponseURL, fmt.Sprintf(noticeNotOwner, verb))
		return
	}
	if err := h.client.OpenModal(ctx, callback.TriggerID, view(decision.Metadata)); err != nil {
		log.Error("Unable to open modal", "error", err)
		h.respond(ctx, log, callback.ResponseURL, noticeFailed)
	}
}

func (h *Handler) handleSubmission(ctx context.Context, log *slog.Logger, callback slack.InteractionCallback) *slack.ViewSubmissionResponse {
	cmd := domain.SubmitCommand{
		UserID:     callback.User.ID,
		UserName:   callback.User.Name,
		TeamDomain: callback.Team.Domain,
		Metadata:   callback.View.PrivateMetadata,
		Body:       SubmittedBody(callback.View),
	}
	log = log.With("callback_id", callback.View.CallbackID)

	var err error
	switch callback.View.CallbackID {
	case ViewEdit:
		err = h.service.SubmitEdit(ctx, cmd)
	case ViewDelete:
		err = h.service.SubmitDelete(ctx, cmd)
	case ViewReply:
		_, err = h.service.SubmitReply(ctx, cmd)
	default:
		log.Warn("Ignoring unknown view")
		return nil
	}

	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, errors.ErrEmptyMessage):
		return slack.NewErrorsViewSubmissionResponse(map[string]string{bodyBlockID: noticeEmptyBody})
	case stderrors.Is(err, errors.ErrMessageNotFound):
		log.Info("Message vanished before the submission", "error", err)
		return notice(noticeNotFound)
	case stderrors.Is(err, errors.ErrNotRelayed):
		log.Info("Message was not posted by the relay", "error", err)
		return notice(noticeNotRelayed)
	case stderrors.Is(err, errors.ErrTargetUnreachable):
		log.Info("Channel not reachable", "error", err)
		return notice(noticeUnreachable)
	default:
		log.Error("Submission failed", "error", err)
		return notice(noticeFailed)
	}
}

func (h *Handler) respond(ctx context.Context, log *slog.Logger, responseURL, text string) {
	if err := h.client.Respond(ctx, responseURL, text); err != nil {
		log.Warn("Unable to answer the user", "error", err)
	}
}

func notice(text string) *slack.ViewSubmissionResponse {
	view := NoticeView("NoPing", text)
	return slack.NewUpdateViewSubmissionResponse(&view)
}

func actionOfView(callbackID string) (ownership.Action, bool) {
	switch callbackID {
	case ViewEdit:
		return ownership.ActionEdit, true
	case ViewDelete:
		return ownership.ActionDelete, true
	case ViewReply:
		return ownership.ActionReply, true
	default:
		return "", false
	}
}
