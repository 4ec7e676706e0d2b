package platform

import (
	stderrors "errors"
	"fmt"
	"noping/errors"

	"github.com/slack-go/slack"
)

// Slack Web API error codes meaning the bot cannot reach the destination,
// typically a private channel it was never added to.
var unreachable = map[string]struct{}{
	"channel_not_found":       {},
	"not_in_channel":          {},
	"is_archived":             {},
	"restricted_action":       {},
	"team_access_not_granted": {},
	"ekm_access_denied":       {},
}

var notFound = map[string]struct{}{
	"message_not_found": {},
	"thread_not_found":  {},
}

// The message exists but was not posted by the bot.
var notRelayed = map[string]struct{}{
	"cant_update_message": {},
	"cant_delete_message": {},
}

// categorize maps a Slack failure onto the relay error taxonomy.
// The platform code is kept in the message for logs.
func categorize(err error) error {
	if err == nil {
		return nil
	}
	code := err.Error()
	var response slack.SlackErrorResponse
	if stderrors.As(err, &response) {
		code = response.Err
	}
	if _, ok := unreachable[code]; ok {
		return fmt.Errorf("%w: %s", errors.ErrTargetUnreachable, code)
	}
	if _, ok := notFound[code]; ok {
		return fmt.Errorf("%w: %s", errors.ErrMessageNotFound, code)
	}
	if _, ok := notRelayed[code]; ok {
		return fmt.Errorf("%w: %s", errors.ErrNotRelayed, code)
	}
	return fmt.Errorf("%w: %v", errors.ErrPlatformRejected, err)
}
