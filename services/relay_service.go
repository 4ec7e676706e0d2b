//go:generate go run go.uber.org/mock/mockgen -source=relay_service.go -destination=../mocks/mock_relay_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"noping/contract"
	"noping/domain"
	"noping/errors"
	"noping/mention"
	"noping/ownership"

	"github.com/go-playground/validator/v10"
)

type IRelayService interface {
	Send(ctx context.Context, cmd domain.SendCommand) (domain.Location, error)
	OpenEdit(ctx context.Context, cmd domain.ActionCommand) (domain.Decision, error)
	SubmitEdit(ctx context.Context, cmd domain.SubmitCommand) error
	OpenDelete(ctx context.Context, cmd domain.ActionCommand) (domain.Decision, error)
	SubmitDelete(ctx context.Context, cmd domain.SubmitCommand) error
	OpenReply(ctx context.Context, cmd domain.ActionCommand) (domain.Decision, error)
	SubmitReply(ctx context.Context, cmd domain.SubmitCommand) (domain.Location, error)
	Cancel(ctx context.Context, action ownership.Action, metadata string)
}

type RelayService struct {
	relay    contract.Relay
	resolver contract.IdentityResolver
	redactor *mention.Redactor
	issuer   *ownership.Issuer
	validate *validator.Validate
	log      *slog.Logger
}

func NewRelayService(
	relay contract.Relay,
	resolver contract.IdentityResolver,
	redactor *mention.Redactor,
	issuer *ownership.Issuer,
	log *slog.Logger,
) *RelayService {
	return &RelayService{
		relay:    relay,
		resolver: resolver,
		redactor: redactor,
		issuer:   issuer,
		validate: validator.New(),
		log:      log,
	}
}

// Send relays a new message under the author's name and avatar.
func (s *RelayService) Send(ctx context.Context, cmd domain.SendCommand) (domain.Location, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	if cmd.Body.IsEmpty() {
		return domain.Location{}, errors.ErrEmptyMessage
	}
	return s.post(ctx, cmd.UserID, cmd.UserName, cmd.ChannelID, cmd.ThreadTS, cmd.TeamDomain, cmd.Body)
}

func (s *RelayService) OpenEdit(ctx context.Context, cmd domain.ActionCommand) (domain.Decision, error) {
	return s.open(ctx, ownership.ActionEdit, cmd, ownership.Owns(cmd.MessageText, cmd.UserID))
}

// SubmitEdit rewrites the relayed message in place with the new body.
func (s *RelayService) SubmitEdit(ctx context.Context, cmd domain.SubmitCommand) error {
	interaction, token, err := s.resume(ownership.ActionEdit, cmd)
	if err != nil {
		return err
	}
	if cmd.Body.IsEmpty() {
		return errors.ErrEmptyMessage
	}

	body, err := s.redactor.Redact(ctx, cmd.Body, cmd.TeamDomain)
	if err != nil {
		return err
	}
	if err := s.relay.Update(ctx, token.Location(), ownership.Render(cmd.UserID, body)); err != nil {
		return fmt.Errorf("edit failed: %w", err)
	}
	return s.applied(interaction, token, cmd.UserID)
}

func (s *RelayService) OpenDelete(ctx context.Context, cmd domain.ActionCommand) (domain.Decision, error) {
	return s.open(ctx, ownership.ActionDelete, cmd, ownership.Owns(cmd.MessageText, cmd.UserID))
}

// SubmitDelete removes the relayed message once the confirmation is submitted.
func (s *RelayService) SubmitDelete(ctx context.Context, cmd domain.SubmitCommand) error {
	interaction, token, err := s.resume(ownership.ActionDelete, cmd)
	if err != nil {
		return err
	}
	if err := s.relay.Delete(ctx, token.Location()); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return s.applied(interaction, token, cmd.UserID)
}

// OpenReply lets anyone answer a relayed message in its thread.
func (s *RelayService) OpenReply(ctx context.Context, cmd domain.ActionCommand) (domain.Decision, error) {
	return s.open(ctx, ownership.ActionReply, cmd, true)
}

func (s *RelayService) SubmitReply(ctx context.Context, cmd domain.SubmitCommand) (domain.Location, error) {
	interaction, token, err := s.resume(ownership.ActionReply, cmd)
	if err != nil {
		return domain.Location{}, err
	}
	if cmd.Body.IsEmpty() {
		return domain.Location{}, errors.ErrEmptyMessage
	}

	location, err := s.post(ctx, cmd.UserID, cmd.UserName, token.ChannelID, token.ThreadTS, cmd.TeamDomain, cmd.Body)
	if err != nil {
		return domain.Location{}, err
	}
	return location, s.applied(interaction, token, cmd.UserID)
}

// Cancel drops the token of a closed modal. Nothing was changed yet.
func (s *RelayService) Cancel(ctx context.Context, action ownership.Action, metadata string) {
	interaction := ownership.Resume(action)
	if err := interaction.Advance(ownership.StageIdle); err != nil {
		s.log.Warn("Unable to cancel interaction", "action", action, "error", err)
		return
	}
	if _, err := s.issuer.Redeem(metadata); err != nil {
		s.log.Debug("Closed modal carried an unusable token", "action", action, "error", err)
		return
	}
	s.log.Debug("Interaction cancelled", "action", action)
}

func (s *RelayService) open(ctx context.Context, action ownership.Action, cmd domain.ActionCommand, owned bool) (domain.Decision, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return domain.Decision{}, fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}

	interaction := ownership.NewInteraction(action)
	if err := interaction.Check(owned); err != nil {
		return domain.Decision{}, err
	}
	if !interaction.Authorized() {
		s.log.Info("Interaction denied", "action", action, "user_id", cmd.UserID,
			"channel_id", cmd.ChannelID, "message_ts", cmd.MessageTS)
		return domain.Decision{Authorized: false}, nil
	}

	token := ownership.Token{Action: action, MessageTS: cmd.MessageTS, ChannelID: cmd.ChannelID}
	if action == ownership.ActionReply {
		token.ThreadTS = cmd.ThreadTS
		if token.ThreadTS == "" {
			token.ThreadTS = cmd.MessageTS
		}
	}
	metadata, err := s.issuer.Issue(token)
	if err != nil {
		return domain.Decision{}, err
	}
	if err := interaction.Advance(ownership.StageAwaitingFormInput); err != nil {
		return domain.Decision{}, err
	}
	return domain.Decision{Authorized: true, Metadata: metadata}, nil
}

// resume redeems the modal token and checks it was issued for this action.
func (s *RelayService) resume(action ownership.Action, cmd domain.SubmitCommand) (*ownership.Interaction, ownership.Token, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, ownership.Token{}, fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	token, err := s.issuer.Redeem(cmd.Metadata)
	if err != nil {
		return nil, ownership.Token{}, err
	}
	if token.Action != action {
		return nil, ownership.Token{}, fmt.Errorf("%w: issued for %s, submitted for %s",
			errors.ErrInvalidToken, token.Action, action)
	}

	interaction := ownership.Resume(action)
	if err := interaction.Advance(ownership.StageAwaitingApply); err != nil {
		return nil, ownership.Token{}, err
	}
	return interaction, token, nil
}

func (s *RelayService) applied(interaction *ownership.Interaction, token ownership.Token, userID string) error {
	if err := interaction.Advance(ownership.StageApplied); err != nil {
		return err
	}
	s.log.Info("Interaction applied", "action", interaction.Action, "user_id", userID,
		"channel_id", token.ChannelID, "message_ts", token.MessageTS)
	return nil
}

func (s *RelayService) post(ctx context.Context, userID, userName, channelID, threadTS, workspace string, body domain.Content) (domain.Location, error) {
	redacted, err := s.redactor.Redact(ctx, body, workspace)
	if err != nil {
		return domain.Location{}, err
	}

	outgoing := domain.Outgoing{
		ChannelID: channelID,
		ThreadTS:  threadTS,
		Username:  userName,
		Message:   ownership.Render(userID, redacted),
	}
	if profile, err := s.resolver.Resolve(ctx, userID); err != nil {
		s.log.Warn("Posting without the author's profile", "user_id", userID, "error", err)
	} else {
		if name := profile.Name(); name != "" {
			outgoing.Username = name
		}
		outgoing.IconURL = profile.ImageURL
	}

	location, err := s.relay.Post(ctx, outgoing)
	if err != nil {
		return domain.Location{}, fmt.Errorf("relay failed: %w", err)
	}
	s.log.Info("Message relayed", "user_id", userID, "channel_id", location.ChannelID, "message_ts", location.Timestamp)
	return location, nil
}
