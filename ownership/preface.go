// Package ownership ties relayed messages to their author without storing
// anything. The author is written into the message itself as a preface and
// read back from the message text when someone asks to edit or delete it.
//
// Parsing the preface is only as trustworthy as the platform's guarantee that
// nobody else can write text into a message posted by the bot.
package ownership

import (
	"noping/domain"
	"noping/errors"

	"github.com/dlclark/regexp2"
)

var prefacePattern = regexp2.MustCompile(`^\*<@(?<user_id>[^|>]*)>\*:`, regexp2.None)

// Preface is the bold, non pinging mention of the author that opens every
// relayed message.
func Preface(authorID string) string {
	return "*<@" + authorID + ">*:"
}

// Render attaches the author preface to a redacted body.
func Render(authorID string, body domain.Content) domain.Rendered {
	preface := Preface(authorID)
	return domain.Rendered{
		AuthorID: authorID,
		Preface:  preface,
		Body:     body,
		Fallback: preface + " " + body.Plain(),
	}
}

// Author extracts the author id from the preface at the start of text.
func Author(text string) (string, error) {
	m, err := prefacePattern.FindStringMatch(text)
	if err != nil || m == nil {
		return "", errors.ErrMalformedPreface
	}
	return m.GroupByName("user_id").String(), nil
}

// Owns reports whether claimantID is the author named by the preface.
// Malformed or empty text is never owned.
func Owns(text, claimantID string) bool {
	author, err := Author(text)
	if err != nil || claimantID == "" {
		return false
	}
	return author == claimantID
}
